// Package repository loads player statistics from tabular datasets.
package repository

import (
	"context"

	"github.com/okian/bestxi/internal/domain/model"
)

// RejectedRow describes a data row skipped during loading.
type RejectedRow struct {
	Line   int    `json:"line"`
	Player string `json:"player,omitempty"`
	Reason string `json:"reason"`
}

// LoadResult is the outcome of one dataset load.
type LoadResult struct {
	Players  []model.PlayerRecord
	Rejected []RejectedRow
}

// Store provides read access to the player table.
type Store interface {
	// Load reads the whole dataset. Players keep source order and carry
	// their 0-based Index among accepted rows.
	// Returns ErrDatasetNotFound, ErrSchema or ErrEmptyDataset on failure.
	Load(ctx context.Context) (LoadResult, error)
}
