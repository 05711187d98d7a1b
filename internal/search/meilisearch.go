package search

import (
	"bazaarsetu/internal/models"

	"github.com/meilisearch/meilisearch-go"
)

// CommodityIndex wraps the Meilisearch index of catalog commodities. It is
// an accelerator for multilingual name search; the database LIKE query
// remains the source of truth when Meilisearch is down or not configured.
type CommodityIndex struct {
	client *meilisearch.Client
	index  string
}

// NewCommodityIndex creates a client for the commodity index
func NewCommodityIndex(host, apiKey string) *CommodityIndex {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})

	return &CommodityIndex{
		client: client,
		index:  "commodities",
	}
}

// InitIndex initializes the Meilisearch index
func (s *CommodityIndex) InitIndex() error {
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        s.index,
		PrimaryKey: "id",
	})
	// Ignore error if index already exists
	if err != nil && err.Error() != "index already exists" {
		return err
	}

	_, err = s.client.Index(s.index).UpdateSearchableAttributes(&[]string{
		"name",
		"name_telugu",
		"name_hindi",
	})
	if err != nil {
		return err
	}

	_, err = s.client.Index(s.index).UpdateFilterableAttributes(&[]string{
		"id",
		"category",
		"unit",
	})
	return err
}

// IndexCommodities indexes the commodity catalog
func (s *CommodityIndex) IndexCommodities(commodities []models.Commodity) error {
	if len(commodities) == 0 {
		return nil
	}
	_, err := s.client.Index(s.index).AddDocuments(commodities)
	return err
}

// Search finds commodities whose names contain the query
func (s *CommodityIndex) Search(query string, limit int64) ([]models.Commodity, error) {
	if limit == 0 {
		limit = 20
	}

	searchRes, err := s.client.Index(s.index).Search(query, &meilisearch.SearchRequest{
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	commodities := make([]models.Commodity, 0, len(searchRes.Hits))
	for _, hit := range searchRes.Hits {
		commodities = append(commodities, parseCommodityFromHit(hit))
	}
	return commodities, nil
}

// parseCommodityFromHit converts a search hit to a Commodity
func parseCommodityFromHit(hit interface{}) models.Commodity {
	hitMap, ok := hit.(map[string]interface{})
	if !ok {
		return models.Commodity{}
	}

	commodity := models.Commodity{
		Name:       getString(hitMap, "name"),
		NameTelugu: getString(hitMap, "name_telugu"),
		NameHindi:  getString(hitMap, "name_hindi"),
		Category:   models.CommodityCategory(getString(hitMap, "category")),
		Unit:       getString(hitMap, "unit"),
		ImageURL:   getString(hitMap, "image_url"),
	}
	if id, ok := hitMap["id"].(float64); ok {
		commodity.ID = int(id)
	}
	return commodity
}

// getString safely extracts a string from map
func getString(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}
