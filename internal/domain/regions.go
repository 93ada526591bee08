package domain

import "strings"

// Geographic region names used by the regional fallback stage
const (
	RegionNorthAmerica = "NORTH_AMERICA"
	RegionEurope       = "EUROPE"
	RegionAsiaPacific  = "ASIA_PACIFIC"
)

// regionCountries is a fixed dispatch table mapping regions to member
// countries. It is intentionally static, not configuration.
var regionCountries = map[string][]string{
	RegionNorthAmerica: {"US", "CA", "MX"},
	RegionEurope:       {"GB", "DE", "FR", "IT", "ES", "NL", "BE"},
	RegionAsiaPacific:  {"JP", "KR", "CN", "AU", "NZ", "SG"},
}

// RegionForCountry returns the region a country belongs to, or "" if the
// country is not in any region.
func RegionForCountry(country string) string {
	for region, countries := range regionCountries {
		for _, c := range countries {
			if strings.EqualFold(c, country) {
				return region
			}
		}
	}
	return ""
}

// SameRegion reports whether two countries belong to the same known region
func SameRegion(a, b string) bool {
	regionA := RegionForCountry(a)
	if regionA == "" {
		return false
	}
	return regionA == RegionForCountry(b)
}
