package repository

import (
	"github.com/okian/bestxi/internal/domain/model"
	"github.com/okian/bestxi/pkg/logger"
)

// Option applies a configuration option to the CSVStore.
type Option func(*CSVStore)

// WithDelimiter sets the field delimiter. Invalid values are ignored here
// and should be checked with ParseDelimiter beforehand.
func WithDelimiter(d Delimiter) Option {
	return func(s *CSVStore) {
		if parsed, err := ParseDelimiter(string(d)); err == nil {
			s.delimiter = parsed
		}
	}
}

// WithLogger sets the logger used for row warnings.
func WithLogger(l logger.Logger) Option {
	return func(s *CSVStore) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRoleNormalizer sets the role alias table.
func WithRoleNormalizer(n *model.RoleNormalizer) Option {
	return func(s *CSVStore) {
		if n != nil {
			s.roles = n
		}
	}
}
