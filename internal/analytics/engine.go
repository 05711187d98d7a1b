package analytics

import (
	"errors"
	"fmt"
	"time"

	"bazaarsetu/internal/database"
	"bazaarsetu/internal/models"
	"bazaarsetu/internal/search"

	gocache "github.com/patrickmn/go-cache"
)

// ErrNoData indicates a query window with no observations. Handlers map it
// to a 404.
var ErrNoData = errors.New("no price data found")

// Store is the read-only subset of the database layer the engine queries.
type Store interface {
	PricesOn(date time.Time, filters database.PriceFilters) ([]models.Price, error)
	PricesByDate(date time.Time) ([]models.Price, error)
	PricesInRange(commodityID int, marketID *int, from, to time.Time) ([]models.Price, error)
	GetCommodity(id int) (*models.Commodity, error)
	GetMarket(id int) (*models.Market, error)
	SearchCommodities(q string, limit int) ([]models.Commodity, error)
}

// Engine derives query-time analytics from stored price observations. It
// never mutates price data.
type Engine struct {
	store Store
	index *search.CommodityIndex // optional; nil means DB search only
	cache *gocache.Cache

	// now is replaceable in tests
	now func() time.Time
}

// NewEngine creates an analytics engine. index may be nil when Meilisearch
// is not configured.
func NewEngine(store Store, index *search.CommodityIndex) *Engine {
	return &Engine{
		store: store,
		index: index,
		cache: gocache.New(5*time.Minute, 10*time.Minute),
		now:   time.Now,
	}
}

// InvalidateCache drops all cached query results. Called after ingestion.
func (e *Engine) InvalidateCache() {
	e.cache.Flush()
}

func (e *Engine) today() time.Time {
	y, m, d := e.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// round2 rounds to two decimal places, the precision all percentage and
// average fields are reported with.
func round2(v float64) float64 {
	if v < 0 {
		return float64(int(v*100-0.5)) / 100
	}
	return float64(int(v*100+0.5)) / 100
}

func percentChange(from, to float64) *float64 {
	if from <= 0 {
		return nil
	}
	change := round2((to - from) / from * 100)
	return &change
}

func (e *Engine) commodityOr404(id int) (*models.Commodity, error) {
	commodity, err := e.store.GetCommodity(id)
	if err != nil {
		return nil, fmt.Errorf("commodity %d: %w", id, ErrNoData)
	}
	return commodity, nil
}
