package reconcile

import (
	"sort"
	"strings"

	"bazaarsetu/internal/models"
)

// Match scoring tiers. An exact name match always beats a token overlap,
// which always beats a substring hit. Within a tier the score grows with the
// strength of the evidence (overlap count, matched word length). Ties are
// broken by catalog id ascending, so matching is deterministic regardless of
// catalog iteration order.
const (
	scoreExact     = 1_000_000
	scoreTokenBase = 10_000
	scoreSubstring = 100
)

// Catalog is the curated reference data records are reconciled against.
type Catalog struct {
	Markets     []models.Market
	Commodities []models.Commodity
}

// Matcher resolves free-text market and commodity names against the catalog.
type Matcher struct {
	markets     []models.Market
	commodities []models.Commodity
}

// NewMatcher builds a matcher over the given catalog. The catalog slices are
// sorted by id so tie-breaking is stable.
func NewMatcher(catalog Catalog) *Matcher {
	markets := make([]models.Market, len(catalog.Markets))
	copy(markets, catalog.Markets)
	sort.Slice(markets, func(i, j int) bool { return markets[i].ID < markets[j].ID })

	commodities := make([]models.Commodity, len(catalog.Commodities))
	copy(commodities, catalog.Commodities)
	sort.Slice(commodities, func(i, j int) bool { return commodities[i].ID < commodities[j].ID })

	return &Matcher{markets: markets, commodities: commodities}
}

// MatchCommodity resolves a record's free-text commodity name. Returns nil
// when no catalog commodity scores above zero.
func (m *Matcher) MatchCommodity(text string) *models.Commodity {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return nil
	}
	recordWords := tokenize(normalized)

	var best *models.Commodity
	bestScore := 0

	for i := range m.commodities {
		c := &m.commodities[i]
		score := scoreCommodity(normalized, recordWords, strings.ToLower(c.Name))
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}

func scoreCommodity(recordText string, recordWords map[string]struct{}, catalogName string) int {
	if recordText == catalogName {
		return scoreExact
	}

	catalogWords := tokenize(catalogName)

	// Token overlap: e.g. "ridgeguard(torai)" tokens against "ridge gourd".
	overlap := 0
	for w := range catalogWords {
		if _, ok := recordWords[w]; ok {
			overlap++
		}
	}
	if overlap > 0 {
		return scoreTokenBase + overlap*100
	}

	// Substring: a sufficiently long catalog word appearing inside the record
	// text. Longer matched words score higher.
	bestLen := 0
	for w := range catalogWords {
		if len(w) > 3 && strings.Contains(recordText, w) && len(w) > bestLen {
			bestLen = len(w)
		}
	}
	if bestLen > 0 {
		return scoreSubstring + bestLen
	}

	return 0
}

// MatchMarket resolves a record's free-text market name. Returns nil when no
// catalog market scores above zero.
func (m *Matcher) MatchMarket(text string) *models.Market {
	cleaned := cleanMarketName(text)
	if cleaned == "" {
		return nil
	}

	var best *models.Market
	bestScore := 0

	for i := range m.markets {
		mk := &m.markets[i]
		score := scoreMarket(cleaned, cleanMarketName(mk.Name))
		if score > bestScore {
			best = mk
			bestScore = score
		}
	}
	return best
}

func scoreMarket(recordName, catalogName string) int {
	if catalogName == "" {
		return 0
	}
	if recordName == catalogName {
		return scoreExact
	}
	// Either cleaned form containing the other counts as a hit; prefer the
	// longer shared name.
	if strings.Contains(recordName, catalogName) {
		return scoreSubstring + len(catalogName)
	}
	if strings.Contains(catalogName, recordName) {
		return scoreSubstring + len(recordName)
	}
	return 0
}

// cleanMarketName lower-cases and strips the " apmc" / " market" suffixes the
// upstream source inconsistently appends.
func cleanMarketName(name string) string {
	cleaned := strings.ToLower(strings.TrimSpace(name))
	cleaned = strings.ReplaceAll(cleaned, " apmc", "")
	cleaned = strings.ReplaceAll(cleaned, " market", "")
	return strings.TrimSpace(cleaned)
}

// tokenize splits a lower-cased name into a word set, treating parentheses
// as separators ("ridgeguard(torai)" -> {ridgeguard, torai}).
func tokenize(text string) map[string]struct{} {
	replaced := strings.NewReplacer("(", " ", ")", " ").Replace(text)
	words := make(map[string]struct{})
	for _, w := range strings.Fields(replaced) {
		words[w] = struct{}{}
	}
	return words
}
