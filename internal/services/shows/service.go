package shows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/showquiz/tvtrivia/internal/dependencies/clock"
	"github.com/showquiz/tvtrivia/internal/model"
	"github.com/showquiz/tvtrivia/internal/storage"
)

// MaxShowsPerDecade caps how many shows a session can pick per decade
const MaxShowsPerDecade = 5

var decadePattern = regexp.MustCompile(`^\d{4}s$`)

// Presets are the built-in show suggestions for each decade
var Presets = map[string][]string{
	"1970s": {"M*A*S*H", "Three's Company", "Happy Days", "The Jeffersons", "Charlie's Angels"},
	"1980s": {"Cheers", "The A-Team", "Knight Rider", "Family Ties", "The Golden Girls"},
	"1990s": {"Friends", "Seinfeld", "The X-Files", "The Fresh Prince of Bel-Air", "ER"},
	"2000s": {"The Office", "Lost", "House", "Grey's Anatomy", "24"},
	"2010s": {"Breaking Bad", "Game of Thrones", "Stranger Things", "Modern Family", "The Crown"},
}

// Decades lists the known decades in chronological order
func Decades() []string {
	decades := make([]string, 0, len(Presets))
	for decade := range Presets {
		decades = append(decades, decade)
	}
	sort.Strings(decades)
	return decades
}

// ValidDecade reports whether the string looks like a decade label
func ValidDecade(decade string) bool {
	return decadePattern.MatchString(decade)
}

// Service manages per-session show selections
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewService creates a new show selection Service
func NewService(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// PresetShows returns the suggested shows for a decade
func (s *Service) PresetShows(decade string) ([]string, error) {
	if !ValidDecade(decade) {
		return nil, model.ErrInvalidDecade
	}
	shows, ok := Presets[decade]
	if !ok {
		return []string{}, nil
	}
	return append([]string{}, shows...), nil
}

// Selected returns the session's picked shows for a decade. Missing
// selection docs read as empty rather than erroring.
func (s *Service) Selected(ctx context.Context, sessionID model.SessionID, decade string) ([]string, error) {
	if !ValidDecade(decade) {
		return nil, model.ErrInvalidDecade
	}

	selections, err := s.storage.GetShowSelections(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrSelectionNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	shows, ok := selections.ByDecade[decade]
	if !ok {
		return []string{}, nil
	}
	return append([]string{}, shows...), nil
}

// Toggle adds the show to the session's selection for the decade, or
// removes it if already present. The five-show cap applies per decade.
func (s *Service) Toggle(ctx context.Context, sessionID model.SessionID, decade, show string) ([]string, error) {
	if !ValidDecade(decade) {
		return nil, model.ErrInvalidDecade
	}
	show = strings.TrimSpace(show)
	if show == "" {
		return nil, model.ErrEmptyShowTitle
	}

	selections, err := s.storage.GetShowSelections(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, model.ErrSelectionNotFound) {
			return nil, err
		}
		selections = &model.ShowSelections{
			SessionID: sessionID,
			ByDecade:  make(map[string][]string),
		}
	}
	if selections.ByDecade == nil {
		selections.ByDecade = make(map[string][]string)
	}

	current := selections.ByDecade[decade]
	idx := -1
	for i, title := range current {
		if strings.EqualFold(strings.TrimSpace(title), show) {
			idx = i
			break
		}
	}

	if idx >= 0 {
		current = append(current[:idx], current[idx+1:]...)
	} else {
		if len(current) >= MaxShowsPerDecade {
			return nil, model.ErrShowCapReached
		}
		current = append(current, show)
	}

	selections.ByDecade[decade] = current
	selections.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveShowSelections(ctx, selections); err != nil {
		s.logger.Error("failed to save show selections",
			slog.String("session_id", string(sessionID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	return append([]string{}, current...), nil
}

// Normalize trims, lowercases, dedupes, and sorts show titles
func Normalize(titles []string) []string {
	seen := make(map[string]bool)
	normalized := make([]string, 0, len(titles))
	for _, title := range titles {
		title = strings.ToLower(strings.TrimSpace(title))
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		normalized = append(normalized, title)
	}
	sort.Strings(normalized)
	return normalized
}

// Equivalent reports whether two show sets are the same after
// normalization
func Equivalent(a, b []string) bool {
	na, nb := Normalize(a), Normalize(b)
	if len(na) != len(nb) {
		return false
	}
	for i := range na {
		if na[i] != nb[i] {
			return false
		}
	}
	return true
}

// SetHash fingerprints a show set, identical for equivalent sets
func SetHash(titles []string) string {
	joined := strings.Join(Normalize(titles), "|")
	sum := sha256.Sum256([]byte(joined))
	return hex.EncodeToString(sum[:])
}
