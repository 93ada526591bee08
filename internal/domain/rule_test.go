package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleMatches(t *testing.T) {
	usDest := Destination{Country: "US", State: "CA", PostalCode: "94105"}

	tests := []struct {
		name             string
		rule             DistributionRule
		dest             Destination
		shippingMethodID string
		matches          bool
	}{
		{
			name:    "filterless rule matches everything",
			rule:    DistributionRule{Name: "catch-all"},
			dest:    usDest,
			matches: true,
		},
		{
			name:    "country filter matches case-insensitively",
			rule:    DistributionRule{ApplicableCountries: []string{"us", "CA"}},
			dest:    usDest,
			matches: true,
		},
		{
			name:    "country filter rejects other country",
			rule:    DistributionRule{ApplicableCountries: []string{"DE", "FR"}},
			dest:    usDest,
			matches: false,
		},
		{
			name:    "region filter matches destination state",
			rule:    DistributionRule{ApplicableRegions: []string{"CA", "NV"}},
			dest:    usDest,
			matches: true,
		},
		{
			name:    "region filter ignored when destination has no state",
			rule:    DistributionRule{ApplicableRegions: []string{"NV"}},
			dest:    Destination{Country: "US"},
			matches: true,
		},
		{
			name:    "region filter rejects other state",
			rule:    DistributionRule{ApplicableRegions: []string{"NV"}},
			dest:    usDest,
			matches: false,
		},
		{
			name:    "literal postal code match",
			rule:    DistributionRule{ApplicablePostalCodes: []string{"94105"}},
			dest:    usDest,
			matches: true,
		},
		{
			name:    "wildcard postal prefix matches",
			rule:    DistributionRule{ApplicablePostalCodes: []string{"94*"}},
			dest:    usDest,
			matches: true,
		},
		{
			name:    "wildcard postal prefix rejects other prefix",
			rule:    DistributionRule{ApplicablePostalCodes: []string{"94*"}},
			dest:    Destination{Country: "US", PostalCode: "10001"},
			matches: false,
		},
		{
			name:    "postal filter ignored when destination has no postal code",
			rule:    DistributionRule{ApplicablePostalCodes: []string{"94*"}},
			dest:    Destination{Country: "US"},
			matches: true,
		},
		{
			name:             "shipping method filter matches",
			rule:             DistributionRule{ShippingMethodID: "sm-express"},
			dest:             usDest,
			shippingMethodID: "sm-express",
			matches:          true,
		},
		{
			name:             "shipping method filter rejects other method",
			rule:             DistributionRule{ShippingMethodID: "sm-express"},
			dest:             usDest,
			shippingMethodID: "sm-standard",
			matches:          false,
		},
		{
			name:    "shipping method filter ignored when request has no method",
			rule:    DistributionRule{ShippingMethodID: "sm-express"},
			dest:    usDest,
			matches: true,
		},
		{
			name: "all filters must hold",
			rule: DistributionRule{
				ApplicableCountries:   []string{"US"},
				ApplicableRegions:     []string{"CA"},
				ApplicablePostalCodes: []string{"94*"},
				ShippingMethodID:      "sm-express",
			},
			dest:             usDest,
			shippingMethodID: "sm-express",
			matches:          true,
		},
		{
			name: "one failing filter rejects the rule",
			rule: DistributionRule{
				ApplicableCountries:   []string{"US"},
				ApplicablePostalCodes: []string{"10*"},
			},
			dest:    usDest,
			matches: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rule.Matches(tt.dest, tt.shippingMethodID)
			assert.Equal(t, tt.matches, got)
		})
	}
}

func TestRegionForCountry(t *testing.T) {
	assert.Equal(t, RegionNorthAmerica, RegionForCountry("US"))
	assert.Equal(t, RegionNorthAmerica, RegionForCountry("mx"))
	assert.Equal(t, RegionEurope, RegionForCountry("DE"))
	assert.Equal(t, RegionAsiaPacific, RegionForCountry("JP"))
	assert.Equal(t, "", RegionForCountry("BR"))
}

func TestSameRegion(t *testing.T) {
	assert.True(t, SameRegion("JP", "AU"))
	assert.True(t, SameRegion("US", "CA"))
	assert.False(t, SameRegion("JP", "DE"))
	assert.False(t, SameRegion("BR", "AR"))
}
