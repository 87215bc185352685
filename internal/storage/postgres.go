package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vanilla-bot/internal/calculator"
	"vanilla-bot/internal/config"
	"vanilla-bot/pkg/redis"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const statsCacheKey = "calculation_stats"

var ErrNotFound = errors.New("calculation not found")

type PostgresStorage struct {
	db     *sqlx.DB
	redis  *redis.Client
	logger *zap.Logger
}

// Calculation is one journal entry: the inputs of a calculation and its
// headline figures. Worksheets are recomputed from the inputs.
type Calculation struct {
	ID              int64     `db:"id"`
	ChatID          int64     `db:"chat_id"`
	Variant         string    `db:"variant"`
	BeanCount       int       `db:"bean_count"`
	Folds           int       `db:"folds"`
	BasePrice       *float64  `db:"base_price"`
	USDToBRL        float64   `db:"usd_brl"`
	EURToBRL        *float64  `db:"eur_brl"`
	EURToUSD        *float64  `db:"eur_usd"`
	PriceUSD        float64   `db:"price_usd"`
	FinalBalanceUSD *float64  `db:"final_balance_usd"`
	CreatedAt       time.Time `db:"created_at"`
}

// NewCalculation builds the journal entry for res.
func NewCalculation(chatID int64, res calculator.Result) Calculation {
	in := res.Input
	c := Calculation{
		ChatID:    chatID,
		Variant:   in.Variant.String(),
		BeanCount: in.BeanCount,
		Folds:     in.Folds,
		USDToBRL:  in.USDToBRL,
		PriceUSD:  res.PriceUSD,
		CreatedAt: time.Now().UTC(),
	}
	if in.Variant == calculator.Basic {
		c.BasePrice = &res.BasePricePerOzUSD
	}
	if res.Costs != nil {
		eurBRL, eurUSD := in.EURToBRL, in.EURToUSD
		c.EURToBRL = &eurBRL
		c.EURToUSD = &eurUSD
		c.FinalBalanceUSD = &res.Costs.FinalBalanceUSD
	}
	return c
}

// Input rebuilds the calculator input recorded in c.
func (c Calculation) Input() calculator.Input {
	in := calculator.Input{
		Variant:           calculator.Variant(c.Variant),
		BeanCount:         c.BeanCount,
		Folds:             c.Folds,
		BasePricePerOzUSD: c.BasePrice,
		USDToBRL:          c.USDToBRL,
	}
	if c.EURToBRL != nil {
		in.EURToBRL = *c.EURToBRL
	}
	if c.EURToUSD != nil {
		in.EURToUSD = *c.EURToUSD
	}
	return in
}

func NewPostgresStorage(ctx context.Context, cfg config.DatabaseConfig, redisClient *redis.Client, logger *zap.Logger) (*PostgresStorage, error) {
	const operation = "storage.NewPostgresStorage"

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
	)

	var db *sqlx.DB
	var err error

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	logger.Info("Connecting to PostgreSQL...")

	err = backoff.RetryNotify(
		func() error {
			db, err = sqlx.ConnectContext(ctx, "postgres", connStr)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			if err = db.PingContext(ctx); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		backoff.WithContext(retryPolicy, ctx),
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger.Info("Successfully connected to PostgreSQL")

	if err := RunMigrations(ctx, db.DB, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	return New(db, redisClient, logger), nil
}

// New wraps an open connection.
func New(db *sqlx.DB, redisClient *redis.Client, logger *zap.Logger) *PostgresStorage {
	return &PostgresStorage{
		db:     db,
		redis:  redisClient,
		logger: logger,
	}
}

func (s *PostgresStorage) SaveCalculation(ctx context.Context, c Calculation) (int64, error) {
	const query = `
        INSERT INTO calculations (
            chat_id, variant, bean_count, folds, base_price, usd_brl,
            eur_brl, eur_usd, price_usd, final_balance_usd, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING id
    `

	var id int64
	err := s.db.QueryRowContext(ctx, query,
		c.ChatID,
		c.Variant,
		c.BeanCount,
		c.Folds,
		c.BasePrice,
		c.USDToBRL,
		c.EURToBRL,
		c.EURToUSD,
		c.PriceUSD,
		c.FinalBalanceUSD,
		c.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save calculation: %w", err)
	}

	if err := s.redis.Del(ctx, statsCacheKey); err != nil {
		s.logger.Warn("Failed to invalidate statistics cache", zap.Error(err))
	}

	return id, nil
}

func (s *PostgresStorage) GetCalculation(ctx context.Context, id int64) (*Calculation, error) {
	const query = `SELECT * FROM calculations WHERE id = $1`

	var c Calculation
	if err := s.db.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("calculation %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get calculation: %w", err)
	}
	return &c, nil
}

// ListCalculations returns the latest calculations of a chat, newest first.
func (s *PostgresStorage) ListCalculations(ctx context.Context, chatID int64, limit int) ([]Calculation, error) {
	const query = `SELECT * FROM calculations WHERE chat_id = $1 ORDER BY created_at DESC LIMIT $2`

	var calcs []Calculation
	if err := s.db.SelectContext(ctx, &calcs, query, chatID, limit); err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	return calcs, nil
}

func (s *PostgresStorage) ListAllCalculations(ctx context.Context) ([]Calculation, error) {
	const query = `SELECT * FROM calculations ORDER BY created_at DESC`

	var calcs []Calculation
	if err := s.db.SelectContext(ctx, &calcs, query); err != nil {
		return nil, fmt.Errorf("failed to fetch calculations: %w", err)
	}
	return calcs, nil
}

type Statistics struct {
	TotalCalculations int            `json:"total_calculations" db:"total"`
	TotalPriceUSD     float64        `json:"total_price_usd" db:"price"`
	TodayCalculations int            `json:"today_calculations"`
	TotalBeans        int64          `json:"total_beans" db:"beans"`
	VariantCounts     map[string]int `json:"variant_counts"`
}

func (s *PostgresStorage) GetStatistics(ctx context.Context) (*Statistics, error) {
	var cached Statistics
	if err := s.redis.GetJSON(ctx, statsCacheKey, &cached); err == nil {
		return &cached, nil
	}

	stats := &Statistics{VariantCounts: make(map[string]int)}

	err := s.db.GetContext(ctx, stats, `
        SELECT
            COUNT(*) AS total,
            COALESCE(SUM(price_usd), 0) AS price,
            COALESCE(SUM(bean_count), 0) AS beans
        FROM calculations
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to get totals: %w", err)
	}

	err = s.db.GetContext(ctx, &stats.TodayCalculations, `
        SELECT COUNT(*) FROM calculations WHERE created_at >= CURRENT_DATE
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's count: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT variant, COUNT(*) AS count
        FROM calculations
        GROUP BY variant
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to get variant counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var variant string
		var count int
		if err := rows.Scan(&variant, &count); err != nil {
			return nil, fmt.Errorf("failed to scan variant count: %w", err)
		}
		stats.VariantCounts[variant] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read variant counts: %w", err)
	}

	if data, err := json.Marshal(stats); err == nil {
		if err := s.redis.Set(ctx, statsCacheKey, data, time.Hour); err != nil {
			s.logger.Warn("Failed to cache statistics", zap.Error(err))
		}
	}

	return stats, nil
}

// CheckRateLimit counts an action for userID and reports whether the
// limit for the current window is exceeded.
func (s *PostgresStorage) CheckRateLimit(ctx context.Context, userID int64, action string, limit int64, window time.Duration) (bool, error) {
	key := fmt.Sprintf("ratelimit:%d:%s", userID, action)

	count, err := s.redis.Incr(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		if _, err := s.redis.Expire(ctx, key, window); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return count > limit, nil
}

func (s *PostgresStorage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
