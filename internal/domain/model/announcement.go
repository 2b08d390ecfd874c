//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"time"
)

// Announcement is a society-wide notice.
type Announcement struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}

// Created parses CreatedAt; ok is false when the backend sent an unparsable value.
func (a Announcement) Created() (time.Time, bool) {
	return parseBackendTime(a.CreatedAt)
}

// PostAnnouncementRequest is the body of POST /announcement/post.
type PostAnnouncementRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Validate requires a title and a message.
func (r PostAnnouncementRequest) Validate() error {
	if blank(r.Title) || blank(r.Message) {
		return errors.New("title and message are required")
	}
	return nil
}
