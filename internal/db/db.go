// Package db stores the candles indicator series are projected from.
package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/amirphl/trendline/internal/candle"
)

// Storage is the interface for all persistent storage.
type Storage interface {
	GetDB() *sql.DB
	candle.Storage
	GetLatestCandle(ctx context.Context, symbol, timeframe string) (*candle.Candle, error)
	GetCandleCount(ctx context.Context, symbol, timeframe string, start, end time.Time) (int, error)
	DeleteCandles(ctx context.Context, symbol, timeframe string, before time.Time) error
}

var (
	_ Storage = (*Default)(nil)
	_ Storage = (*MemoryStorage)(nil)
)
