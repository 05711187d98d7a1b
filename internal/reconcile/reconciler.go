package reconcile

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"bazaarsetu/internal/fetcher"
	"bazaarsetu/internal/models"
)

// arrivalDateLayout is the fixed date format of the upstream source.
const arrivalDateLayout = "02/01/2006"

// Store is the subset of the database layer the reconciler writes through.
type Store interface {
	AllMarkets() ([]models.Market, error)
	AllCommodities() ([]models.Commodity, error)
	InsertPrices([]models.Price) error
	CreateIngestRun(*models.IngestRun) error
	SaveIngestRun(*models.IngestRun) error
}

// PriceSource produces raw records for one ingestion run.
type PriceSource interface {
	FetchPrices(ctx context.Context) ([]fetcher.RawRecord, error)
}

// Result summarizes one ingestion run. Added + Skipped always equals
// Filtered; records outside the target states are Fetched - Filtered.
type Result struct {
	Fetched   int `json:"fetched"`
	Filtered  int `json:"filtered"`
	Added     int `json:"added"`
	Skipped   int `json:"skipped"`
	Triggered int `json:"triggered"`
}

// Reconciler converts raw external records into price rows using the local
// catalog as ground truth. It never creates markets or commodities.
type Reconciler struct {
	store        Store
	source       PriceSource
	targetStates []string
	sourceTag    string

	// OnIngest, when set, receives the freshly inserted batch after commit
	// and returns how many alerts it triggered.
	OnIngest func([]models.Price) int
}

// NewReconciler creates a reconciler for the given store and source.
func NewReconciler(store Store, source PriceSource, targetStates []string, sourceTag string) *Reconciler {
	return &Reconciler{
		store:        store,
		source:       source,
		targetStates: targetStates,
		sourceTag:    sourceTag,
	}
}

// Run executes one ingestion run: fetch, reconcile, insert, evaluate alerts.
// A fetch or catalog failure aborts the run before any writes; per-record
// problems only increment the skipped counter.
func (r *Reconciler) Run(ctx context.Context) (*Result, error) {
	run := &models.IngestRun{
		Source:    r.sourceTag,
		StartedAt: time.Now(),
	}
	if err := r.store.CreateIngestRun(run); err != nil {
		log.Printf("Reconcile: failed to record run start: %v", err)
	}

	records, err := r.source.FetchPrices(ctx)
	if err != nil {
		r.finishRun(run, nil, err)
		return nil, fmt.Errorf("ingestion aborted: %w", err)
	}

	markets, err := r.store.AllMarkets()
	if err != nil {
		r.finishRun(run, nil, err)
		return nil, fmt.Errorf("failed to load market catalog: %w", err)
	}
	commodities, err := r.store.AllCommodities()
	if err != nil {
		r.finishRun(run, nil, err)
		return nil, fmt.Errorf("failed to load commodity catalog: %w", err)
	}
	log.Printf("Reconcile: catalog has %d markets, %d commodities", len(markets), len(commodities))

	prices, result := Reconcile(records, Catalog{Markets: markets, Commodities: commodities}, ReconcileOptions{
		TargetStates: r.targetStates,
		SourceTag:    r.sourceTag,
		Now:          time.Now(),
	})

	if err := r.store.InsertPrices(prices); err != nil {
		r.finishRun(run, result, err)
		return nil, fmt.Errorf("failed to commit price batch: %w", err)
	}

	if r.OnIngest != nil && len(prices) > 0 {
		result.Triggered = r.OnIngest(prices)
	}

	r.finishRun(run, result, nil)
	log.Printf("Reconcile: run complete. Fetched: %d, Filtered: %d, Added: %d, Skipped: %d, Triggered: %d",
		result.Fetched, result.Filtered, result.Added, result.Skipped, result.Triggered)

	return result, nil
}

func (r *Reconciler) finishRun(run *models.IngestRun, result *Result, runErr error) {
	now := time.Now()
	run.FinishedAt = &now
	if result != nil {
		run.Fetched = result.Fetched
		run.Added = result.Added
		run.Skipped = result.Skipped
		run.Triggered = result.Triggered
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	if err := r.store.SaveIngestRun(run); err != nil {
		log.Printf("Reconcile: failed to record run result: %v", err)
	}
}

// ReconcileOptions parameterizes a pure reconciliation pass.
type ReconcileOptions struct {
	TargetStates []string
	SourceTag    string
	Now          time.Time
}

// Reconcile maps raw records onto price rows against the catalog. Records
// outside the target states are dropped; among the remaining, records with
// no catalog match or a non-positive modal price are skipped. No record
// failure aborts the pass.
func Reconcile(records []fetcher.RawRecord, catalog Catalog, opts ReconcileOptions) ([]models.Price, *Result) {
	result := &Result{Fetched: len(records)}

	allowed := make(map[string]struct{}, len(opts.TargetStates))
	for _, s := range opts.TargetStates {
		allowed[strings.ToLower(s)] = struct{}{}
	}

	matcher := NewMatcher(catalog)
	prices := make([]models.Price, 0, len(records))

	for _, rec := range records {
		if _, ok := allowed[strings.ToLower(strings.TrimSpace(rec.State))]; !ok {
			continue
		}
		result.Filtered++

		commodity := matcher.MatchCommodity(rec.Commodity)
		if commodity == nil {
			result.Skipped++
			continue
		}

		market := matcher.MatchMarket(rec.Market)
		if market == nil {
			result.Skipped++
			continue
		}

		modal := rec.ModalPrice.Value()
		if modal <= 0 {
			// A zero or negative modal price means "no real observation".
			result.Skipped++
			continue
		}

		prices = append(prices, models.Price{
			MarketID:    market.ID,
			CommodityID: commodity.ID,
			MinPrice:    rec.MinPrice.Value(),
			MaxPrice:    rec.MaxPrice.Value(),
			ModalPrice:  modal,
			PriceDate:   parseArrivalDate(rec.ArrivalDate, opts.Now),
			FetchedAt:   opts.Now,
			Source:      opts.SourceTag,
		})
		result.Added++
	}

	return prices, result
}

// parseArrivalDate parses the source's DD/MM/YYYY date, silently falling
// back to the run date on any parse failure.
func parseArrivalDate(s string, now time.Time) time.Time {
	parsed, err := time.Parse(arrivalDateLayout, strings.TrimSpace(s))
	if err != nil {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return parsed
}
