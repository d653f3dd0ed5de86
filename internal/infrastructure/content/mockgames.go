package content

import "github.com/roulettesim/roulettesim-go/internal/domain/entities/catalog"

// MockGameCatalog is the last-resort game list served when both the
// aggregator API and the cache are unavailable.
func MockGameCatalog() []catalog.RouletteGame {
	return []catalog.RouletteGame{
		{
			ID:       "mock-european-1",
			Name:     "Classic European Roulette",
			Provider: "Evolution Gaming",
			Variant:  "european",
			Thumbnail: "https://via.placeholder.com/300x200/0f4c3a/ffffff?text=" +
				"European+Roulette",
			IsAvailable: true,
			Metadata: catalog.GameMetadata{
				MinBet:     1,
				MaxBet:     1000,
				Popularity: 85,
			},
		},
		{
			ID:       "mock-american-1",
			Name:     "American Roulette Gold",
			Provider: "NetEnt",
			Variant:  "american",
			Thumbnail: "https://via.placeholder.com/300x200/8b0000/ffffff?text=" +
				"American+Roulette",
			IsAvailable: true,
			Metadata: catalog.GameMetadata{
				MinBet:     1,
				MaxBet:     500,
				Popularity: 75,
			},
		},
		{
			ID:       "mock-french-1",
			Name:     "French Roulette Pro",
			Provider: "Microgaming",
			Variant:  "french",
			Thumbnail: "https://via.placeholder.com/300x200/1e3a8a/ffffff?text=" +
				"French+Roulette",
			IsAvailable: true,
			Metadata: catalog.GameMetadata{
				MinBet:     5,
				MaxBet:     2000,
				Popularity: 70,
			},
		},
	}
}
