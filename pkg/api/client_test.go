package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLatestRate(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "USD", r.URL.Query().Get("from"))
		assert.Equal(t, "BRL", r.URL.Query().Get("to"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"amount":1.0,"base":"USD","date":"2026-10-16","rates":{"BRL":5.43}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "secret", time.Second, time.Hour, zap.NewNop())

	rate, err := c.LatestRate(context.Background(), "usd", "brl")
	require.NoError(t, err)
	assert.InDelta(t, 5.43, rate, 1e-9)

	rate, err = c.LatestRate(context.Background(), "USD", "BRL")
	require.NoError(t, err)
	assert.InDelta(t, 5.43, rate, 1e-9)
	assert.Equal(t, int32(1), calls.Load(), "second call should be served from cache")
}

func TestLatestRate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"bad status", http.StatusBadGateway, `{}`},
		{"bad json", http.StatusOK, `{`},
		{"missing currency", http.StatusOK, `{"rates":{"EUR":0.92}}`},
		{"non-positive rate", http.StatusOK, `{"rates":{"BRL":0}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "", time.Second, time.Hour, zap.NewNop())
			_, err := c.LatestRate(context.Background(), "USD", "BRL")
			assert.Error(t, err)
		})
	}
}
