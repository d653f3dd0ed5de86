package catalog

import (
	"sort"
	"strings"
)

// DefaultVariant is the fallback when no variant keyword is detected.
// European roulette has the best player odds, so unknown games default there.
const DefaultVariant = "european"

// GameMetadata holds the betting and feature metadata of a roulette game.
type GameMetadata struct {
	MinBet     float64  `json:"minBet"`
	MaxBet     float64  `json:"maxBet"`
	Features   []string `json:"features"`
	Popularity int      `json:"popularity"`
	RTP        float64  `json:"rtp,omitempty"`
	Volatility string   `json:"volatility,omitempty"`
	Reels      int      `json:"reels,omitempty"`
	Paylines   int      `json:"paylines,omitempty"`
}

// RouletteGame is one playable game from the aggregator catalog. Variant is
// an open string discovered heuristically from free-text metadata, not a
// closed enum.
type RouletteGame struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Provider       string       `json:"provider"`
	Variant        string       `json:"variant"`
	Thumbnail      string       `json:"thumbnail"`
	IframeURL      string       `json:"iframeUrl"`
	IsAvailable    bool         `json:"isAvailable"`
	Metadata       GameMetadata `json:"metadata"`
	CacheTimestamp int64        `json:"cacheTimestamp"`
}

// variantKeywords is checked in order; the first match wins. The common
// wheel types come first, then the live-table flavors the aggregator keeps
// inventing.
var variantKeywords = []string{
	"european", "american", "french",
	"mini", "speed", "lightning", "live", "multi", "auto", "immersive",
}

// DetectVariant classifies a game by scanning its free-text metadata for
// known variant keywords, falling back to DefaultVariant.
func DetectVariant(fields ...string) string {
	searchable := strings.ToLower(strings.Join(fields, " "))
	for _, keyword := range variantKeywords {
		if strings.Contains(searchable, keyword) {
			return keyword
		}
	}
	return DefaultVariant
}

// GameFilters narrows a game list. Zero values mean "no constraint".
type GameFilters struct {
	Variant  string
	Provider string
	MinBet   float64
	MaxBet   float64
}

// FilterGames applies the filters to a game list, returning a new slice.
func FilterGames(games []RouletteGame, filters GameFilters) []RouletteGame {
	filtered := make([]RouletteGame, 0, len(games))
	for _, game := range games {
		if filters.Variant != "" && game.Variant != filters.Variant {
			continue
		}
		if filters.Provider != "" && !strings.Contains(strings.ToLower(game.Provider), strings.ToLower(filters.Provider)) {
			continue
		}
		if filters.MinBet > 0 && game.Metadata.MinBet < filters.MinBet {
			continue
		}
		if filters.MaxBet > 0 && game.Metadata.MaxBet > filters.MaxBet {
			continue
		}
		filtered = append(filtered, game)
	}
	return filtered
}

// SortGamesByPopularity orders games most popular first, in place.
func SortGamesByPopularity(games []RouletteGame) {
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].Metadata.Popularity > games[j].Metadata.Popularity
	})
}

// VariantDisplayName returns the human-readable name for a variant.
func VariantDisplayName(variant string) string {
	switch variant {
	case "european":
		return "European Roulette"
	case "american":
		return "American Roulette"
	case "french":
		return "French Roulette"
	default:
		return "Roulette"
	}
}

// VariantDescription returns the odds blurb shown on variant pages.
func VariantDescription(variant string) string {
	switch variant {
	case "european":
		return "Single zero wheel with 2.7% house edge - best odds for players"
	case "american":
		return "Double zero wheel with 5.26% house edge - classic American style"
	case "french":
		return "Single zero with La Partage rule - lowest house edge at 1.35%"
	default:
		return "Classic casino roulette game"
	}
}
