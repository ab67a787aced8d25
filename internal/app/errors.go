package service

import (
	"context"
	"errors"

	"github.com/okian/bestxi/internal/adapters/repository"
	"github.com/okian/bestxi/internal/domain/model"
	"github.com/okian/bestxi/internal/domain/selection"
)

// Error kinds reported to transports.
const (
	KindDatasetNotFound     = "dataset_not_found"
	KindSchemaError         = "schema_error"
	KindEmptyDataset        = "empty_dataset"
	KindNoPlayersRemaining  = "no_players_remaining"
	KindInsufficientPlayers = "insufficient_players"
	KindInvalidPitchType    = "invalid_pitch_type"
	KindInvalidQuotas       = "invalid_quotas"
	KindCanceled            = "canceled"
	KindTimeout             = "timeout"
	KindInternal            = "internal"
)

// Kind classifies err into a stable kind string.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, model.ErrInvalidPitchType):
		return KindInvalidPitchType
	case errors.Is(err, repository.ErrDatasetNotFound):
		return KindDatasetNotFound
	case errors.Is(err, repository.ErrSchema):
		return KindSchemaError
	case errors.Is(err, repository.ErrEmptyDataset):
		return KindEmptyDataset
	case errors.Is(err, selection.ErrNoPlayersRemaining):
		return KindNoPlayersRemaining
	case errors.Is(err, selection.ErrInsufficientPlayers):
		return KindInsufficientPlayers
	case errors.Is(err, selection.ErrInvalidQuotas):
		return KindInvalidQuotas
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	default:
		return KindInternal
	}
}

// IsClientError reports whether err stems from the request rather than the
// dataset or the process.
func IsClientError(err error) bool {
	switch Kind(err) {
	case KindInvalidPitchType, KindNoPlayersRemaining, KindInsufficientPlayers, KindCanceled:
		return true
	default:
		return false
	}
}
