package notify

import "log"

// Dispatcher delivers a push notification to a device token. Delivery is an
// external collaborator; failures are logged by callers, never retried.
type Dispatcher interface {
	Send(token, title, body string) error
}

// LogDispatcher writes notifications to the process log instead of sending
// them. Used until a real push provider is wired in deployment.
type LogDispatcher struct{}

// NewLogDispatcher creates a log-only dispatcher
func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

// Send implements Dispatcher
func (d *LogDispatcher) Send(token, title, body string) error {
	preview := token
	if len(preview) > 20 {
		preview = preview[:20] + "..."
	}
	log.Printf("Notify: [%s] %s: %s", preview, title, body)
	return nil
}
