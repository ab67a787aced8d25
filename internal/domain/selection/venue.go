package selection

import (
	"sort"
	"strings"

	"github.com/okian/bestxi/internal/domain/model"
)

// PitchSource records where a resolved pitch type came from.
type PitchSource string

// Pitch sources.
const (
	PitchFromRequest PitchSource = "explicit"
	PitchFromVenue   PitchSource = "venue"
	PitchFromDefault PitchSource = "default"
)

// DefaultVenues maps well-known grounds to the conditions they usually offer.
func DefaultVenues() map[string]model.PitchType {
	return map[string]model.PitchType{
		"lahore":        model.PitchSpin,
		"karachi":       model.PitchSpin,
		"wankhede":      model.PitchNeutral,
		"chepauk":       model.PitchSpin,
		"eden gardens":  model.PitchSpin,
		"narendra modi": model.PitchNeutral,
		"dubai":         model.PitchSpin,
		"sharjah":       model.PitchSpin,
		"galle":         model.PitchSpin,
		"mirpur":        model.PitchSpin,
		"mcg":           model.PitchPace,
		"perth":         model.PitchPace,
		"gabba":         model.PitchPace,
		"lords":         model.PitchPace,
		"headingley":    model.PitchPace,
		"centurion":     model.PitchPace,
		"wanderers":     model.PitchPace,
		"basin reserve": model.PitchPace,
		"kensington":    model.PitchNeutral,
		"the oval":      model.PitchNeutral,
	}
}

// VenuePitchMap infers pitch type from venue. It is immutable after
// construction.
type VenuePitchMap struct {
	venues map[string]model.PitchType
}

// NewVenuePitchMap normalizes venue names into a lookup.
func NewVenuePitchMap(venues map[string]model.PitchType) VenuePitchMap {
	m := VenuePitchMap{venues: make(map[string]model.PitchType, len(venues))}
	for name, pitch := range venues {
		if key := NormalizeVenue(name); key != "" {
			m.venues[key] = pitch
		}
	}
	return m
}

// NormalizeVenue lower-cases, drops apostrophes and dots, treats underscores
// as spaces and collapses whitespace, so "Lord's" and "lords" match.
func NormalizeVenue(venue string) string {
	v := strings.ToLower(venue)
	v = strings.NewReplacer("'", "", "’", "", ".", "", "_", " ").Replace(v)
	return strings.Join(strings.Fields(v), " ")
}

// Lookup returns the pitch type for venue.
func (m VenuePitchMap) Lookup(venue string) (model.PitchType, bool) {
	p, ok := m.venues[NormalizeVenue(venue)]
	return p, ok
}

// Venues lists the known venues sorted by name.
func (m VenuePitchMap) Venues() []string {
	names := make([]string, 0, len(m.venues))
	for name := range m.venues {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolvePitch applies precedence: an explicit pitch type, then the venue
// lookup, then neutral. A malformed explicit value is an error.
func ResolvePitch(explicit, venue string, venues VenuePitchMap) (model.PitchType, PitchSource, error) {
	pitch, supplied, err := model.ParsePitchType(explicit)
	if err != nil {
		return "", "", err
	}
	if supplied {
		return pitch, PitchFromRequest, nil
	}
	if p, ok := venues.Lookup(venue); ok {
		return p, PitchFromVenue, nil
	}
	return model.PitchNeutral, PitchFromDefault, nil
}

// FilterOpponent drops players from the opponent's country, compared
// case-insensitively. A blank opponent filters nothing.
func FilterOpponent(players []model.PlayerRecord, opponent string) ([]model.PlayerRecord, error) {
	opp := strings.TrimSpace(opponent)
	if opp == "" {
		return players, nil
	}
	out := make([]model.PlayerRecord, 0, len(players))
	for _, p := range players {
		if strings.EqualFold(strings.TrimSpace(p.Country), opp) {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, ErrNoPlayersRemaining
	}
	return out, nil
}
