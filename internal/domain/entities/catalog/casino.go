// Package catalog defines the read-only content catalogs: affiliate casino
// entries and the roulette games fetched from the aggregator.
package catalog

import (
	"fmt"
	"time"
)

// CasinoFeatures is the feature-flag block of a casino entry.
type CasinoFeatures struct {
	LiveDealers   bool   `json:"liveDealers"`
	MobileApp     bool   `json:"mobileApp"`
	BonusOffering string `json:"bonusOffering"`
	Reputation    int    `json:"reputation"` // 1-10
}

// CasinoEntry is one affiliate casino in the static catalog. The catalog is
// loaded once and read-only for the process lifetime; MatchingScore is
// derived per request and never persisted.
type CasinoEntry struct {
	CasinoID                string         `json:"casinoId"`
	Name                    string         `json:"name"`
	SupportedVariants       []string       `json:"supportedVariants"`
	Features                CasinoFeatures `json:"features"`
	AffiliateURL            string         `json:"affiliateUrl"`
	GeographicAvailability  []string       `json:"geographicAvailability"`
	ConversionPriority      int            `json:"conversionPriority"` // lower = promoted harder
	LastVerified            time.Time      `json:"lastVerified"`
	MatchingScore           float64        `json:"matchingScore"`
}

// Validate checks the schema constraints a catalog entry must satisfy.
func (c *CasinoEntry) Validate() error {
	if c.CasinoID == "" {
		return fmt.Errorf("casino entry missing casinoId")
	}
	if c.Name == "" {
		return fmt.Errorf("casino %s missing name", c.CasinoID)
	}
	if c.Features.Reputation < 1 || c.Features.Reputation > 10 {
		return fmt.Errorf("casino %s reputation %d out of range [1,10]", c.CasinoID, c.Features.Reputation)
	}
	if c.AffiliateURL == "" {
		return fmt.Errorf("casino %s missing affiliateUrl", c.CasinoID)
	}
	return nil
}

// SupportsVariant reports whether the entry supports the given variant.
func (c *CasinoEntry) SupportsVariant(variant string) bool {
	for _, v := range c.SupportedVariants {
		if v == variant {
			return true
		}
	}
	return false
}

// AvailableIn reports geographic availability. An unknown region keeps the
// entry eligible.
func (c *CasinoEntry) AvailableIn(region string) bool {
	if region == "" {
		return true
	}
	for _, r := range c.GeographicAvailability {
		if r == region {
			return true
		}
	}
	return false
}
