package entity

import "strings"

// Region selects currency and locale for display formatting.
type Region string

const (
	RegionAU Region = "AU"
	RegionUS Region = "US"
)

// DefaultRegion is used when a request does not name one.
const DefaultRegion = RegionAU

// ParseRegion parses a region code. The second value is false for unknown codes.
func ParseRegion(value string) (Region, bool) {
	switch Region(strings.ToUpper(strings.TrimSpace(value))) {
	case RegionAU:
		return RegionAU, true
	case RegionUS:
		return RegionUS, true
	case "":
		return DefaultRegion, true
	}
	return "", false
}

// CurrencyCode returns the ISO currency code for the region.
func (r Region) CurrencyCode() string {
	if r == RegionUS {
		return "USD"
	}
	return "AUD"
}

// LanguageTag returns the BCP 47 tag used for number formatting.
func (r Region) LanguageTag() string {
	if r == RegionUS {
		return "en-US"
	}
	return "en-AU"
}
