package domain

import "time"

// Severity of a notification banner.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// NotificationLifetime is how long a banner stays visible after being raised.
const NotificationLifetime = 6 * time.Second

// Notification is the auto-dismissing banner shown after workspace actions.
type Notification struct {
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
	RaisedAt time.Time `json:"raisedAt"`
}

// Active reports whether the banner should still be shown at now.
func (n *Notification) Active(now time.Time) bool {
	if n == nil {
		return false
	}
	return now.Before(n.RaisedAt.Add(NotificationLifetime))
}
