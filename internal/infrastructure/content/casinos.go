// Package content loads the static content catalogs from disk: affiliate
// casino entries and the fallback game list used when the aggregator is
// unreachable.
package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/roulettesim/roulettesim-go/internal/domain/entities/catalog"
	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
)

// LoadCasinoCatalog reads every *.json file in dir into a validated casino
// catalog. A missing directory yields the built-in default catalog so the
// recommendation path always has entries to rank.
func LoadCasinoCatalog(dir string, logger *logging.ChanneledLogger) ([]catalog.CasinoEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Catalog().Warn("Casino catalog directory missing, using built-in defaults", "dir", dir)
			return DefaultCasinoCatalog(), nil
		}
		return nil, fmt.Errorf("failed to read casino catalog dir %s: %w", dir, err)
	}

	var casinos []catalog.CasinoEntry
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		payload, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		var casino catalog.CasinoEntry
		if err := json.Unmarshal(payload, &casino); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if err := casino.Validate(); err != nil {
			return nil, fmt.Errorf("invalid casino entry in %s: %w", path, err)
		}
		casinos = append(casinos, casino)
	}

	if len(casinos) == 0 {
		logger.Catalog().Warn("Casino catalog directory empty, using built-in defaults", "dir", dir)
		return DefaultCasinoCatalog(), nil
	}

	logger.Catalog().Info("Casino catalog loaded", "dir", dir, "entries", len(casinos))
	return casinos, nil
}

// DefaultCasinoCatalog is the built-in entry set used when no catalog files
// are deployed.
func DefaultCasinoCatalog() []catalog.CasinoEntry {
	verified := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	return []catalog.CasinoEntry{
		{
			CasinoID:          "royal-spin",
			Name:              "Royal Spin Casino",
			SupportedVariants: []string{"european", "french"},
			Features: catalog.CasinoFeatures{
				LiveDealers:   true,
				MobileApp:     true,
				BonusOffering: "100% match up to $500",
				Reputation:    9,
			},
			AffiliateURL:           "https://example.com/go/royal-spin",
			GeographicAvailability: []string{"GB", "DE", "CA"},
			ConversionPriority:     1,
			LastVerified:           verified,
		},
		{
			CasinoID:          "vegas-table",
			Name:              "Vegas Table",
			SupportedVariants: []string{"american", "european"},
			Features: catalog.CasinoFeatures{
				LiveDealers:   true,
				MobileApp:     false,
				BonusOffering: "50 free spins",
				Reputation:    8,
			},
			AffiliateURL:           "https://example.com/go/vegas-table",
			GeographicAvailability: []string{"US", "CA"},
			ConversionPriority:     2,
			LastVerified:           verified,
		},
		{
			CasinoID:          "riviera-play",
			Name:              "Riviera Play",
			SupportedVariants: []string{"french", "european"},
			Features: catalog.CasinoFeatures{
				LiveDealers:   false,
				MobileApp:     true,
				BonusOffering: "",
				Reputation:    7,
			},
			AffiliateURL:           "https://example.com/go/riviera-play",
			GeographicAvailability: []string{"FR", "DE", "GB"},
			ConversionPriority:     3,
			LastVerified:           verified,
		},
		{
			CasinoID:          "lucky-wheel",
			Name:              "Lucky Wheel",
			SupportedVariants: []string{"european"},
			Features: catalog.CasinoFeatures{
				LiveDealers:   false,
				MobileApp:     true,
				BonusOffering: "20 no-deposit spins",
				Reputation:    6,
			},
			AffiliateURL:           "https://example.com/go/lucky-wheel",
			GeographicAvailability: []string{"GB", "CA", "NZ"},
			ConversionPriority:     4,
			LastVerified:           verified,
		},
	}
}
