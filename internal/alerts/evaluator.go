package alerts

import (
	"fmt"
	"log"
	"time"

	"bazaarsetu/internal/models"
	"bazaarsetu/internal/notify"
)

// EvaluatorStore is the subset of the database layer the evaluator needs.
type EvaluatorStore interface {
	ActiveAlertsForCommodity(commodityID int) ([]models.PriceAlert, error)
	SaveAlert(alert *models.PriceAlert) error
	GetCommodity(id int) (*models.Commodity, error)
}

// TriggerEvent describes one alert firing against one observation.
type TriggerEvent struct {
	AlertID        int                   `json:"alert_id"`
	UserID         int                   `json:"user_id"`
	FCMToken       string                `json:"-"`
	CommodityID    int                   `json:"commodity_id"`
	MarketID       int                   `json:"market_id"`
	CurrentPrice   float64               `json:"current_price"`
	ThresholdPrice float64               `json:"threshold_price"`
	Direction      models.AlertDirection `json:"direction"`
}

// Evaluator scans freshly-ingested observations against active alerts and
// dispatches notifications for the ones that trigger. Triggering updates the
// alert's last-triggered timestamp but never deactivates it, so the same
// alert can fire again on the next qualifying observation.
type Evaluator struct {
	store      EvaluatorStore
	dispatcher notify.Dispatcher

	now func() time.Time
}

// NewEvaluator creates an alert evaluator
func NewEvaluator(store EvaluatorStore, dispatcher notify.Dispatcher) *Evaluator {
	return &Evaluator{
		store:      store,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// Evaluate checks a batch of observations against active alerts and returns
// the trigger events. Store or dispatch failures for one alert never stop
// the rest of the batch.
func (e *Evaluator) Evaluate(prices []models.Price) []TriggerEvent {
	var events []TriggerEvent

	// One alert query per distinct commodity in the batch.
	alertCache := make(map[int][]models.PriceAlert)

	for _, price := range prices {
		alerts, ok := alertCache[price.CommodityID]
		if !ok {
			var err error
			alerts, err = e.store.ActiveAlertsForCommodity(price.CommodityID)
			if err != nil {
				log.Printf("Alerts: failed to load alerts for commodity %d: %v", price.CommodityID, err)
				alerts = nil
			}
			alertCache[price.CommodityID] = alerts
		}

		for i := range alerts {
			alert := &alerts[i]
			if !alert.Matches(price.MarketID, price.ModalPrice) {
				continue
			}

			triggeredAt := e.now()
			alert.LastTriggered = &triggeredAt
			if err := e.store.SaveAlert(alert); err != nil {
				log.Printf("Alerts: failed to update alert %d: %v", alert.ID, err)
			}

			event := TriggerEvent{
				AlertID:        alert.ID,
				UserID:         alert.UserID,
				CommodityID:    price.CommodityID,
				MarketID:       price.MarketID,
				CurrentPrice:   price.ModalPrice,
				ThresholdPrice: alert.ThresholdPrice,
				Direction:      alert.Direction,
			}
			if alert.User != nil {
				event.FCMToken = alert.User.FCMToken
			}
			events = append(events, event)

			e.dispatch(event, alert)
		}
	}

	if len(events) > 0 {
		log.Printf("Alerts: triggered %d price alerts", len(events))
	}
	return events
}

func (e *Evaluator) dispatch(event TriggerEvent, alert *models.PriceAlert) {
	if e.dispatcher == nil || event.FCMToken == "" {
		return
	}
	if alert.User != nil && !alert.User.PushEnabled {
		return
	}

	name := fmt.Sprintf("commodity %d", event.CommodityID)
	if commodity, err := e.store.GetCommodity(event.CommodityID); err == nil {
		name = commodity.Name
	}

	var title, body string
	if event.Direction == models.AlertBelow {
		title = fmt.Sprintf("%s price dropped", name)
		body = fmt.Sprintf("%s is now at %.2f, at or below your alert of %.2f", name, event.CurrentPrice, event.ThresholdPrice)
	} else {
		title = fmt.Sprintf("%s price rose", name)
		body = fmt.Sprintf("%s is now at %.2f, at or above your alert of %.2f", name, event.CurrentPrice, event.ThresholdPrice)
	}

	if err := e.dispatcher.Send(event.FCMToken, title, body); err != nil {
		log.Printf("Alerts: notification dispatch failed for alert %d: %v", event.AlertID, err)
	}
}
