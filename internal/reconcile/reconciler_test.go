package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"bazaarsetu/internal/fetcher"
	"bazaarsetu/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flex(v float64) fetcher.FlexFloat {
	return fetcher.FlexFloat(v)
}

func reconcileOptions() ReconcileOptions {
	return ReconcileOptions{
		TargetStates: []string{"Andhra Pradesh", "Telangana"},
		SourceTag:    "data.gov.in",
		Now:          time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC),
	}
}

func TestReconcileMatchesAndConverts(t *testing.T) {
	records := []fetcher.RawRecord{
		{
			State:       "Telangana",
			Market:      "Hyderabad APMC",
			Commodity:   "Tomato",
			MinPrice:    flex(30),
			MaxPrice:    flex(50),
			ModalPrice:  flex(40),
			ArrivalDate: "15/06/2025",
		},
	}

	prices, result := Reconcile(records, testCatalog(), reconcileOptions())

	require.Len(t, prices, 1)
	p := prices[0]
	assert.Equal(t, 1, p.MarketID)
	assert.Equal(t, 1, p.CommodityID)
	assert.Equal(t, 30.0, p.MinPrice)
	assert.Equal(t, 50.0, p.MaxPrice)
	assert.Equal(t, 40.0, p.ModalPrice)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), p.PriceDate)
	assert.Equal(t, "data.gov.in", p.Source)

	assert.Equal(t, 1, result.Fetched)
	assert.Equal(t, 1, result.Filtered)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 0, result.Skipped)
}

func TestReconcileFromRawJSON(t *testing.T) {
	// String-typed prices and the DD/MM/YYYY date, as the upstream actually
	// sends them.
	raw := `{"state":"Telangana","market":"Hyderabad APMC","commodity":"Tomato",
		"min_price":"30","max_price":"45","modal_price":"38","arrival_date":"05/03/2024"}`
	var rec fetcher.RawRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))

	prices, result := Reconcile([]fetcher.RawRecord{rec}, testCatalog(), reconcileOptions())

	require.Len(t, prices, 1)
	assert.Equal(t, 1, prices[0].MarketID)
	assert.Equal(t, 1, prices[0].CommodityID)
	assert.Equal(t, 38.0, prices[0].ModalPrice)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), prices[0].PriceDate)
	assert.Equal(t, 1, result.Added)
}

func TestReconcileDropsOtherStates(t *testing.T) {
	records := []fetcher.RawRecord{
		{State: "Karnataka", Market: "Hyderabad", Commodity: "Tomato", ModalPrice: flex(40), ArrivalDate: "15/06/2025"},
		{State: "Telangana", Market: "Hyderabad", Commodity: "Tomato", ModalPrice: flex(40), ArrivalDate: "15/06/2025"},
	}

	prices, result := Reconcile(records, testCatalog(), reconcileOptions())

	assert.Len(t, prices, 1)
	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 1, result.Filtered)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 0, result.Skipped, "out-of-state records are filtered, not skipped")
}

func TestReconcileSkipsUnmatchedAndZeroModal(t *testing.T) {
	records := []fetcher.RawRecord{
		{State: "Telangana", Market: "Hyderabad", Commodity: "Wheat", ModalPrice: flex(40), ArrivalDate: "15/06/2025"},
		{State: "Telangana", Market: "Mumbai", Commodity: "Tomato", ModalPrice: flex(40), ArrivalDate: "15/06/2025"},
		{State: "Telangana", Market: "Hyderabad", Commodity: "Tomato", ModalPrice: flex(0), ArrivalDate: "15/06/2025"},
		{State: "Telangana", Market: "Hyderabad", Commodity: "Tomato", ModalPrice: flex(40), ArrivalDate: "15/06/2025"},
	}

	prices, result := Reconcile(records, testCatalog(), reconcileOptions())

	assert.Len(t, prices, 1)
	assert.Equal(t, 4, result.Filtered)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 3, result.Skipped)
	assert.Equal(t, result.Filtered, result.Added+result.Skipped)
}

func TestReconcileDateFallback(t *testing.T) {
	records := []fetcher.RawRecord{
		{State: "Telangana", Market: "Hyderabad", Commodity: "Tomato", ModalPrice: flex(40), ArrivalDate: "not-a-date"},
		{State: "Telangana", Market: "Hyderabad", Commodity: "Tomato", ModalPrice: flex(40), ArrivalDate: ""},
	}

	opts := reconcileOptions()
	prices, _ := Reconcile(records, testCatalog(), opts)

	require.Len(t, prices, 2)
	wantDate := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, wantDate, prices[0].PriceDate)
	assert.Equal(t, wantDate, prices[1].PriceDate)
}

func TestReconcileEmptyInput(t *testing.T) {
	prices, result := Reconcile(nil, testCatalog(), reconcileOptions())

	assert.Empty(t, prices)
	assert.Equal(t, 0, result.Fetched)
	assert.Equal(t, 0, result.Added)
}

type fakeStore struct {
	markets     []models.Market
	commodities []models.Commodity
	inserted    []models.Price
	runs        []*models.IngestRun
	insertErr   error
}

func (f *fakeStore) AllMarkets() ([]models.Market, error)         { return f.markets, nil }
func (f *fakeStore) AllCommodities() ([]models.Commodity, error)  { return f.commodities, nil }
func (f *fakeStore) InsertPrices(prices []models.Price) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, prices...)
	return nil
}
func (f *fakeStore) CreateIngestRun(run *models.IngestRun) error {
	f.runs = append(f.runs, run)
	return nil
}
func (f *fakeStore) SaveIngestRun(run *models.IngestRun) error { return nil }

type fakeSource struct {
	records []fetcher.RawRecord
	err     error
}

func (f *fakeSource) FetchPrices(ctx context.Context) ([]fetcher.RawRecord, error) {
	return f.records, f.err
}

func TestRunInsertsAndRecordsRun(t *testing.T) {
	catalog := testCatalog()
	store := &fakeStore{markets: catalog.Markets, commodities: catalog.Commodities}
	source := &fakeSource{records: []fetcher.RawRecord{
		{State: "Telangana", Market: "Hyderabad", Commodity: "Tomato", ModalPrice: flex(40), ArrivalDate: "15/06/2025"},
	}}

	r := NewReconciler(store, source, []string{"Telangana"}, "data.gov.in")

	var hookPrices []models.Price
	r.OnIngest = func(prices []models.Price) int {
		hookPrices = prices
		return 2
	}

	result, err := r.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 2, result.Triggered)
	assert.Len(t, store.inserted, 1)
	assert.Len(t, hookPrices, 1)

	require.Len(t, store.runs, 1)
	run := store.runs[0]
	assert.Equal(t, "data.gov.in", run.Source)
	assert.NotNil(t, run.FinishedAt)
	assert.Empty(t, run.Error)
	assert.Equal(t, 1, run.Added)
}

func TestRunAbortsOnFetchError(t *testing.T) {
	catalog := testCatalog()
	store := &fakeStore{markets: catalog.Markets, commodities: catalog.Commodities}
	source := &fakeSource{err: errors.New("upstream unavailable")}

	r := NewReconciler(store, source, []string{"Telangana"}, "data.gov.in")

	result, err := r.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Empty(t, store.inserted)

	require.Len(t, store.runs, 1)
	assert.Contains(t, store.runs[0].Error, "upstream unavailable")
}

func TestRunSkipsHookWhenNothingInserted(t *testing.T) {
	catalog := testCatalog()
	store := &fakeStore{markets: catalog.Markets, commodities: catalog.Commodities}
	source := &fakeSource{records: []fetcher.RawRecord{
		{State: "Karnataka", Market: "Hyderabad", Commodity: "Tomato", ModalPrice: flex(40)},
	}}

	r := NewReconciler(store, source, []string{"Telangana"}, "data.gov.in")

	called := false
	r.OnIngest = func([]models.Price) int {
		called = true
		return 0
	}

	result, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Added)
	assert.False(t, called)
}
