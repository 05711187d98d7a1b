package analytics

import (
	"fmt"
	"log"

	"bazaarsetu/internal/models"
)

// SearchCommodities finds commodities whose canonical, Telugu or Hindi name
// contains the query, case-insensitively. Limit is bounded to 1-50. When a
// Meilisearch index is configured it answers first; the database LIKE query
// remains the authoritative fallback.
func (e *Engine) SearchCommodities(q string, limit int) ([]models.Commodity, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	if e.index != nil {
		results, err := e.index.Search(q, int64(limit))
		if err == nil {
			return results, nil
		}
		log.Printf("Analytics: search index unavailable, falling back to database: %v", err)
	}

	results, err := e.store.SearchCommodities(q, limit)
	if err != nil {
		return nil, fmt.Errorf("commodity search failed: %w", err)
	}
	return results, nil
}
