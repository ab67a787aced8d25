package repository

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/okian/bestxi/internal/domain/model"
	"github.com/okian/bestxi/pkg/logger"
	"github.com/okian/bestxi/pkg/metrics"
)

// Delimiter selects how fields are separated.
type Delimiter string

// Supported delimiters.
const (
	DelimiterAuto  Delimiter = "auto"
	DelimiterTab   Delimiter = "tab"
	DelimiterComma Delimiter = "comma"
)

// ParseDelimiter accepts auto, tab, comma or the literal characters.
// An empty value means auto.
func ParseDelimiter(s string) (Delimiter, error) {
	if s == "\t" {
		return DelimiterTab, nil
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DelimiterAuto, nil
	case "tab", `\t`, "tsv":
		return DelimiterTab, nil
	case "comma", ",", "csv":
		return DelimiterComma, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDelimiter, s)
}

// CSVStore reads players from a delimited text file on every Load.
type CSVStore struct {
	path      string
	delimiter Delimiter
	roles     *model.RoleNormalizer
	logger    logger.Logger
}

// NewCSVStore creates a store for the dataset at path.
func NewCSVStore(path string, opts ...Option) *CSVStore {
	s := &CSVStore{
		path:      path,
		delimiter: DelimiterAuto,
		roles:     model.NewRoleNormalizer(model.DefaultRoleAliases()),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("repository")
	}
	return s
}

// Path returns the dataset location.
func (s *CSVStore) Path() string { return s.path }

// Load implements Store.
func (s *CSVStore) Load(ctx context.Context) (LoadResult, error) {
	start := time.Now()
	res, err := s.load(ctx)
	if err != nil {
		metrics.RecordDatasetLoadError()
		metrics.RecordErrorByComponent("repository", errorType(err))
		return LoadResult{}, err
	}
	metrics.RecordDatasetLoad(float64(time.Since(start).Nanoseconds())/1e6, len(res.Players), len(res.Rejected))
	return res, nil
}

func (s *CSVStore) load(ctx context.Context) (LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return LoadResult{}, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("%w: %s: %w", ErrDatasetNotFound, s.path, err)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = s.comma(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return LoadResult{}, fmt.Errorf("%w: %s is empty", ErrEmptyDataset, s.path)
	}
	if err != nil {
		return LoadResult{}, fmt.Errorf("%w: read header: %w", ErrSchema, err)
	}
	cols, err := resolveColumns(header)
	if err != nil {
		return LoadResult{}, err
	}

	var res LoadResult
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return LoadResult{}, fmt.Errorf("%w: %w", ErrSchema, err)
		}
		line, _ := r.FieldPos(0)

		p, reason := s.parseRow(row, cols)
		if reason != "" {
			rej := RejectedRow{Line: line, Player: p.Name, Reason: reason}
			res.Rejected = append(res.Rejected, rej)
			s.logger.Warn(ctx, "skipping dataset row",
				logger.Int("line", rej.Line),
				logger.String("player", rej.Player),
				logger.String("reason", rej.Reason))
			continue
		}
		p.Index = len(res.Players)
		res.Players = append(res.Players, p)
	}

	if len(res.Players) == 0 {
		return LoadResult{}, fmt.Errorf("%w: %s (%d rows rejected)", ErrEmptyDataset, s.path, len(res.Rejected))
	}
	return res, nil
}

func (s *CSVStore) comma(data []byte) rune {
	switch s.delimiter {
	case DelimiterTab:
		return '\t'
	case DelimiterComma:
		return ','
	}
	first := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first = data[:i]
	}
	if bytes.Count(first, []byte{'\t'}) > bytes.Count(first, []byte{','}) {
		return '\t'
	}
	return ','
}

// parseRow converts one record. A non-empty reason means the row is rejected.
func (s *CSVStore) parseRow(row []string, cols columns) (model.PlayerRecord, string) {
	cell := func(name string) string {
		i := cols.at(name)
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	name, keySource := cell(colPlayer), cell(colPlayerKey)
	if name == "" {
		name = keySource
	}
	if keySource == "" {
		keySource = name
	}
	p := model.PlayerRecord{
		Name:    name,
		Key:     model.NormalizeKey(keySource),
		Country: cell(colCountry),
		RawRole: cell(colRole),
	}
	if p.Key == "" {
		return p, "blank player identity"
	}

	role, err := s.roles.Normalize(p.RawRole)
	if err != nil {
		return p, fmt.Sprintf("unknown role %q", p.RawRole)
	}
	p.Role = role

	p.Runs = parseNumber(cell(colRuns))
	p.BattingAverage = parseNumber(cell(colBattingAverage))
	p.StrikeRate = parseNumber(cell(colStrikeRate))
	p.WicketsTaken = parseNumber(cell(colWickets))
	p.BowlingEconomy = parseNumber(cell(colEconomy))
	p.MatchesBatted = parseNumber(cell(colMatchesBatted))
	return p, ""
}

// parseNumber reads a statistic. A trailing not-out marker and thousands
// separators are ignored; anything unparseable, non-finite or negative is 0.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "*"))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func errorType(err error) string {
	switch {
	case errors.Is(err, ErrDatasetNotFound):
		return "dataset_not_found"
	case errors.Is(err, ErrSchema):
		return "schema_error"
	case errors.Is(err, ErrEmptyDataset):
		return "empty_dataset"
	default:
		return "unknown"
	}
}
