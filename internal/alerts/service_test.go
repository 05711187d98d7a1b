package alerts

import (
	"errors"
	"testing"

	"bazaarsetu/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotFound = errors.New("record not found")

type fakeServiceStore struct {
	users       map[int]*models.User
	commodities map[int]*models.Commodity
	alerts      map[int]*models.PriceAlert
	nextID      int
}

func newFakeServiceStore() *fakeServiceStore {
	return &fakeServiceStore{
		users:       map[int]*models.User{1: {ID: 1}},
		commodities: map[int]*models.Commodity{1: {ID: 1, Name: "Tomato"}},
		alerts:      map[int]*models.PriceAlert{},
		nextID:      1,
	}
}

func (f *fakeServiceStore) CreateAlert(alert *models.PriceAlert) error {
	alert.ID = f.nextID
	f.nextID++
	f.alerts[alert.ID] = alert
	return nil
}

func (f *fakeServiceStore) AlertsByUser(userID int) ([]models.PriceAlert, error) {
	var out []models.PriceAlert
	for _, a := range f.alerts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeServiceStore) GetAlertForUser(alertID, userID int) (*models.PriceAlert, error) {
	a, ok := f.alerts[alertID]
	if !ok || a.UserID != userID {
		return nil, errNotFound
	}
	return a, nil
}

func (f *fakeServiceStore) SaveAlert(alert *models.PriceAlert) error {
	f.alerts[alert.ID] = alert
	return nil
}

func (f *fakeServiceStore) DeleteAlert(alert *models.PriceAlert) error {
	delete(f.alerts, alert.ID)
	return nil
}

func (f *fakeServiceStore) GetCommodity(id int) (*models.Commodity, error) {
	if c, ok := f.commodities[id]; ok {
		return c, nil
	}
	return nil, errNotFound
}

func (f *fakeServiceStore) GetUser(id int) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errNotFound
}

func TestCreateAlertDefaults(t *testing.T) {
	s := NewService(newFakeServiceStore())

	alert, err := s.Create(CreateRequest{UserID: 1, CommodityID: 1, ThresholdPrice: 50})
	require.NoError(t, err)

	assert.Equal(t, models.AlertBelow, alert.Direction)
	assert.True(t, alert.IsActive)
	assert.Nil(t, alert.MarketID)
	assert.Equal(t, 50.0, alert.ThresholdPrice)
}

func TestCreateAlertValidation(t *testing.T) {
	s := NewService(newFakeServiceStore())

	_, err := s.Create(CreateRequest{UserID: 1, CommodityID: 1, ThresholdPrice: 0})
	assert.ErrorIs(t, err, ErrInvalidAlert)

	_, err = s.Create(CreateRequest{UserID: 1, CommodityID: 1, ThresholdPrice: -10})
	assert.ErrorIs(t, err, ErrInvalidAlert)

	_, err = s.Create(CreateRequest{UserID: 1, CommodityID: 1, ThresholdPrice: 50, Direction: "sideways"})
	assert.ErrorIs(t, err, ErrInvalidAlert)
}

func TestCreateAlertUnknownReferences(t *testing.T) {
	s := NewService(newFakeServiceStore())

	_, err := s.Create(CreateRequest{UserID: 99, CommodityID: 1, ThresholdPrice: 50})
	assert.ErrorIs(t, err, errNotFound)

	_, err = s.Create(CreateRequest{UserID: 1, CommodityID: 99, ThresholdPrice: 50})
	assert.ErrorIs(t, err, errNotFound)
}

func TestToggleAlert(t *testing.T) {
	store := newFakeServiceStore()
	s := NewService(store)

	created, err := s.Create(CreateRequest{UserID: 1, CommodityID: 1, ThresholdPrice: 50})
	require.NoError(t, err)

	toggled, err := s.Toggle(created.ID, 1)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	toggled, err = s.Toggle(created.ID, 1)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)
}

func TestToggleAlertWrongUser(t *testing.T) {
	store := newFakeServiceStore()
	s := NewService(store)

	created, err := s.Create(CreateRequest{UserID: 1, CommodityID: 1, ThresholdPrice: 50})
	require.NoError(t, err)

	_, err = s.Toggle(created.ID, 2)
	assert.ErrorIs(t, err, errNotFound)
}

func TestDeleteAlert(t *testing.T) {
	store := newFakeServiceStore()
	s := NewService(store)

	created, err := s.Create(CreateRequest{UserID: 1, CommodityID: 1, ThresholdPrice: 50})
	require.NoError(t, err)

	require.NoError(t, s.Delete(created.ID, 1))

	remaining, err := s.ListByUser(1)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	assert.ErrorIs(t, s.Delete(created.ID, 1), errNotFound)
}
