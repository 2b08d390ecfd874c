//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// NotificationMessage is one pushed text event awaiting dismissal.
// It is never persisted.
type NotificationMessage struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	ReceivedAt time.Time `json:"receivedAt"`
}
