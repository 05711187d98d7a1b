package reconcile

import (
	"testing"

	"bazaarsetu/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() Catalog {
	return Catalog{
		Markets: []models.Market{
			{ID: 1, Name: "Hyderabad"},
			{ID: 2, Name: "Vijayawada"},
			{ID: 3, Name: "Warangal"},
		},
		Commodities: []models.Commodity{
			{ID: 1, Name: "Tomato"},
			{ID: 2, Name: "Onion"},
			{ID: 3, Name: "Ridge Gourd"},
			{ID: 4, Name: "Bottle Gourd"},
			{ID: 5, Name: "Green Chilli"},
		},
	}
}

func TestMatchCommodityExact(t *testing.T) {
	m := NewMatcher(testCatalog())

	c := m.MatchCommodity("Tomato")
	require.NotNil(t, c)
	assert.Equal(t, 1, c.ID)

	c = m.MatchCommodity("  onion  ")
	require.NotNil(t, c)
	assert.Equal(t, 2, c.ID)
}

func TestMatchCommodityTokenOverlap(t *testing.T) {
	m := NewMatcher(testCatalog())

	// Parenthesized vernacular variant still shares the "gourd" token.
	c := m.MatchCommodity("Ridge Gourd(Tori)")
	require.NotNil(t, c)
	assert.Equal(t, 3, c.ID)

	c = m.MatchCommodity("Green Chilly")
	require.NotNil(t, c)
	assert.Equal(t, 5, c.ID, "shared token 'green' should select Green Chilli")
}

func TestMatchCommoditySubstring(t *testing.T) {
	m := NewMatcher(testCatalog())

	c := m.MatchCommodity("Tomatoes")
	require.NotNil(t, c)
	assert.Equal(t, 1, c.ID)
}

func TestMatchCommodityNoMatch(t *testing.T) {
	m := NewMatcher(testCatalog())

	assert.Nil(t, m.MatchCommodity("Wheat"))
	assert.Nil(t, m.MatchCommodity(""))
	assert.Nil(t, m.MatchCommodity("   "))
}

func TestMatchCommodityExactBeatsOverlap(t *testing.T) {
	// "Gourd" alone token-overlaps both gourds; an exact hit on a different
	// entry must still win over any overlap.
	catalog := Catalog{
		Commodities: []models.Commodity{
			{ID: 1, Name: "Ridge Gourd"},
			{ID: 2, Name: "Bottle Gourd"},
			{ID: 3, Name: "Bottle Gourd Long"},
		},
	}
	m := NewMatcher(catalog)

	c := m.MatchCommodity("Bottle Gourd")
	require.NotNil(t, c)
	assert.Equal(t, 2, c.ID)
}

func TestMatchCommodityTieBreaksOnLowestID(t *testing.T) {
	// "Gourd" overlaps both entries with identical scores. The catalog is
	// shuffled to prove iteration order does not decide the winner.
	catalog := Catalog{
		Commodities: []models.Commodity{
			{ID: 7, Name: "Bottle Gourd"},
			{ID: 3, Name: "Ridge Gourd"},
		},
	}
	m := NewMatcher(catalog)

	c := m.MatchCommodity("Gourd")
	require.NotNil(t, c)
	assert.Equal(t, 3, c.ID)
}

func TestMatchMarketExactAndSuffixes(t *testing.T) {
	m := NewMatcher(testCatalog())

	mk := m.MatchMarket("Hyderabad")
	require.NotNil(t, mk)
	assert.Equal(t, 1, mk.ID)

	// Upstream source appends APMC / Market suffixes inconsistently.
	mk = m.MatchMarket("Hyderabad APMC")
	require.NotNil(t, mk)
	assert.Equal(t, 1, mk.ID)

	mk = m.MatchMarket("Vijayawada Market")
	require.NotNil(t, mk)
	assert.Equal(t, 2, mk.ID)
}

func TestMatchMarketSubstring(t *testing.T) {
	m := NewMatcher(testCatalog())

	mk := m.MatchMarket("Warangal (Rural)")
	require.NotNil(t, mk)
	assert.Equal(t, 3, mk.ID)
}

func TestMatchMarketNoMatch(t *testing.T) {
	m := NewMatcher(testCatalog())

	assert.Nil(t, m.MatchMarket("Mumbai"))
	assert.Nil(t, m.MatchMarket(""))
}

func TestMatcherDeterministicAcrossOrderings(t *testing.T) {
	base := testCatalog()
	reversed := Catalog{
		Markets:     make([]models.Market, len(base.Markets)),
		Commodities: make([]models.Commodity, len(base.Commodities)),
	}
	for i, mk := range base.Markets {
		reversed.Markets[len(base.Markets)-1-i] = mk
	}
	for i, c := range base.Commodities {
		reversed.Commodities[len(base.Commodities)-1-i] = c
	}

	a := NewMatcher(base)
	b := NewMatcher(reversed)

	for _, name := range []string{"Tomato", "Gourd", "Green Chilly", "Hyderabad APMC"} {
		ca := a.MatchCommodity(name)
		cb := b.MatchCommodity(name)
		if ca == nil {
			assert.Nil(t, cb)
		} else {
			require.NotNil(t, cb)
			assert.Equal(t, ca.ID, cb.ID, "commodity match for %q must not depend on catalog order", name)
		}
	}
}
