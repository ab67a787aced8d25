package service

import (
	"github.com/okian/bestxi/internal/adapters/repository"
	"github.com/okian/bestxi/internal/config"
	"github.com/okian/bestxi/internal/domain/model"
	"github.com/okian/bestxi/internal/domain/scoring"
	"github.com/okian/bestxi/pkg/logger"
)

// NewFromConfig builds the CSV store and the service policy from cfg.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	delimiter, err := repository.ParseDelimiter(cfg.Dataset.Delimiter)
	if err != nil {
		return nil, err
	}
	aliases, err := cfg.RoleAliasTable()
	if err != nil {
		return nil, err
	}
	venues, err := cfg.VenuePitches()
	if err != nil {
		return nil, err
	}

	store := repository.NewCSVStore(cfg.Dataset.Path,
		repository.WithDelimiter(delimiter),
		repository.WithRoleNormalizer(model.NewRoleNormalizer(aliases)),
		repository.WithLogger(logger.Get().Named("repository")),
	)
	scorer := scoring.New(
		scoring.WithWeights(cfg.Weights),
		scoring.WithLeadershipWeights(cfg.Leadership),
		scoring.WithEliteBowlers(cfg.EliteBowlers),
	)

	base := []Option{
		WithScorer(scorer),
		WithQuotas(cfg.Quotas),
		WithCaptainPool(cfg.CaptainPool),
		WithVenues(venues),
	}
	return New(store, append(base, opts...)...), nil
}
