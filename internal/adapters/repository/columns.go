package repository

import "strings"

// Canonical column names.
const (
	colPlayer         = "player"
	colPlayerKey      = "player_key"
	colCountry        = "country"
	colRole           = "role"
	colRuns           = "runs"
	colBattingAverage = "batting_average"
	colStrikeRate     = "strike_rate"
	colWickets        = "wickets"
	colEconomy        = "economy"
	colMatchesBatted  = "matches_batted"
)

var columnAliases = map[string][]string{ //nolint:gochecknoglobals // read-only lookup table
	colPlayer:         {"player", "player_name", "name"},
	colPlayerKey:      {"player_key", "player_normalized", "player_id", "normalized_name"},
	colCountry:        {"country", "team", "nation"},
	colRole:           {"role", "playing_role", "player_role"},
	colRuns:           {"runs", "total_runs"},
	colBattingAverage: {"batting_average", "bat_avg", "batting_avg", "average", "avg"},
	colStrikeRate:     {"strike_rate", "sr", "batting_strike_rate"},
	colWickets:        {"wickets", "wickets_taken", "wkts"},
	colEconomy:        {"economy", "bowling_economy", "econ", "economy_rate"},
	colMatchesBatted:  {"matches_batted", "innings_batted", "innings", "matches"},
}

// columns maps canonical names to cell positions; absent columns are -1.
type columns map[string]int

func (c columns) at(name string) int {
	if i, ok := c[name]; ok {
		return i
	}
	return -1
}

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(h)
}

// resolveColumns matches header cells against the alias table, trying aliases
// in order. Missing required columns are reported as a SchemaError.
func resolveColumns(header []string) (columns, error) {
	byHeader := make(map[string]int, len(header))
	for i, h := range header {
		n := normalizeHeader(h)
		if _, dup := byHeader[n]; !dup {
			byHeader[n] = i
		}
	}

	cols := make(columns, len(columnAliases))
	for canonical, aliases := range columnAliases {
		for _, alias := range aliases {
			if i, ok := byHeader[alias]; ok {
				cols[canonical] = i
				break
			}
		}
	}

	var missing []string
	if cols.at(colPlayer) < 0 && cols.at(colPlayerKey) < 0 {
		missing = append(missing, colPlayer)
	}
	for _, required := range []string{colCountry, colRole} {
		if cols.at(required) < 0 {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}
	return cols, nil
}
