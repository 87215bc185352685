package bot

import (
	"context"
	"errors"
	"fmt"

	"vanilla-bot/internal/calculator"
	"vanilla-bot/pkg/redis"
)

// UserState is the in-progress calculator form of one chat.
type UserState struct {
	Step      string   `json:"step"`
	Variant   string   `json:"variant,omitempty"`
	BeanCount int      `json:"bean_count"`
	Folds     int      `json:"folds"`
	BasePrice *float64 `json:"base_price,omitempty"`
	USDToBRL  float64  `json:"usd_brl,omitempty"`
	EURToUSD  float64  `json:"eur_usd,omitempty"`
	EURToBRL  float64  `json:"eur_brl,omitempty"`

	LastCalculationID int64 `json:"last_calculation_id,omitempty"`
}

// Input converts the collected answers into calculator input.
func (s UserState) Input() calculator.Input {
	return calculator.Input{
		Variant:           calculator.Variant(s.Variant),
		BeanCount:         s.BeanCount,
		Folds:             s.Folds,
		BasePricePerOzUSD: s.BasePrice,
		USDToBRL:          s.USDToBRL,
		EURToUSD:          s.EURToUSD,
		EURToBRL:          s.EURToBRL,
	}
}

type StateStorage struct {
	redis *redis.Client
}

func NewStateStorage(redis *redis.Client) *StateStorage {
	return &StateStorage{redis: redis}
}

// Get returns the chat state; a chat without state gets an empty one.
func (s *StateStorage) Get(ctx context.Context, chatID int64) (UserState, error) {
	var state UserState
	err := s.redis.GetJSON(ctx, getStateKey(chatID), &state)
	if errors.Is(err, redis.ErrNotFound) {
		return UserState{}, nil
	}
	if err != nil {
		return UserState{}, fmt.Errorf("failed to get state: %w", err)
	}
	return state, nil
}

func (s *StateStorage) Save(ctx context.Context, chatID int64, state UserState) error {
	if err := s.redis.SetJSON(ctx, getStateKey(chatID), state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Update applies fn to the current state and saves the result.
func (s *StateStorage) Update(ctx context.Context, chatID int64, fn func(*UserState)) (UserState, error) {
	state, err := s.Get(ctx, chatID)
	if err != nil {
		return UserState{}, err
	}
	fn(&state)
	return state, s.Save(ctx, chatID, state)
}

func (s *StateStorage) SetStep(ctx context.Context, chatID int64, step string) error {
	_, err := s.Update(ctx, chatID, func(st *UserState) { st.Step = step })
	return err
}

// Reset starts a fresh form at step, dropping previous answers.
func (s *StateStorage) Reset(ctx context.Context, chatID int64, step string) error {
	return s.Save(ctx, chatID, UserState{Step: step})
}

func (s *StateStorage) Clear(ctx context.Context, chatID int64) error {
	if err := s.redis.Del(ctx, getStateKey(chatID)); err != nil {
		return fmt.Errorf("failed to clear state: %w", err)
	}
	return nil
}

func getStateKey(chatID int64) string {
	return fmt.Sprintf("state:%d", chatID)
}
