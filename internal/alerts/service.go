package alerts

import (
	"errors"
	"fmt"

	"bazaarsetu/internal/models"
)

// ErrInvalidAlert indicates a create request that fails validation.
var ErrInvalidAlert = errors.New("invalid alert")

// ServiceStore is the subset of the database layer the CRUD service uses.
type ServiceStore interface {
	CreateAlert(alert *models.PriceAlert) error
	AlertsByUser(userID int) ([]models.PriceAlert, error)
	GetAlertForUser(alertID, userID int) (*models.PriceAlert, error)
	SaveAlert(alert *models.PriceAlert) error
	DeleteAlert(alert *models.PriceAlert) error
	GetCommodity(id int) (*models.Commodity, error)
	GetUser(id int) (*models.User, error)
}

// Service manages user price alerts.
type Service struct {
	store ServiceStore
}

// NewService creates an alert service
func NewService(store ServiceStore) *Service {
	return &Service{store: store}
}

// CreateRequest holds the fields of a new alert.
type CreateRequest struct {
	UserID         int                   `json:"user_id" binding:"required"`
	CommodityID    int                   `json:"commodity_id" binding:"required"`
	MarketID       *int                  `json:"market_id"`
	ThresholdPrice float64               `json:"threshold_price" binding:"required"`
	Direction      models.AlertDirection `json:"direction"`
}

// Create validates and stores a new alert. The referenced user and commodity
// must exist; the direction defaults to "below".
func (s *Service) Create(req CreateRequest) (*models.PriceAlert, error) {
	if req.ThresholdPrice <= 0 {
		return nil, fmt.Errorf("threshold price must be positive: %w", ErrInvalidAlert)
	}
	direction := req.Direction
	if direction == "" {
		direction = models.AlertBelow
	}
	if direction != models.AlertBelow && direction != models.AlertAbove {
		return nil, fmt.Errorf("direction must be below or above: %w", ErrInvalidAlert)
	}

	if _, err := s.store.GetUser(req.UserID); err != nil {
		return nil, fmt.Errorf("user %d not found: %w", req.UserID, err)
	}
	if _, err := s.store.GetCommodity(req.CommodityID); err != nil {
		return nil, fmt.Errorf("commodity %d not found: %w", req.CommodityID, err)
	}

	alert := &models.PriceAlert{
		UserID:         req.UserID,
		CommodityID:    req.CommodityID,
		MarketID:       req.MarketID,
		ThresholdPrice: req.ThresholdPrice,
		Direction:      direction,
		IsActive:       true,
	}
	if err := s.store.CreateAlert(alert); err != nil {
		return nil, fmt.Errorf("failed to create alert: %w", err)
	}
	return alert, nil
}

// ListByUser returns a user's alerts, newest first.
func (s *Service) ListByUser(userID int) ([]models.PriceAlert, error) {
	return s.store.AlertsByUser(userID)
}

// Toggle flips an alert's active flag. The alert must belong to the user.
func (s *Service) Toggle(alertID, userID int) (*models.PriceAlert, error) {
	alert, err := s.store.GetAlertForUser(alertID, userID)
	if err != nil {
		return nil, err
	}
	alert.IsActive = !alert.IsActive
	if err := s.store.SaveAlert(alert); err != nil {
		return nil, fmt.Errorf("failed to update alert: %w", err)
	}
	return alert, nil
}

// Delete removes an alert owned by the user.
func (s *Service) Delete(alertID, userID int) error {
	alert, err := s.store.GetAlertForUser(alertID, userID)
	if err != nil {
		return err
	}
	return s.store.DeleteAlert(alert)
}
