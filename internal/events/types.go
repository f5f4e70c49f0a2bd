package events

import (
	"time"
)

// EventType identifies the type of event
type EventType string

// Core event types
const (
	// Notification events
	NotificationInfo    EventType = "notification.info"
	NotificationSuccess EventType = "notification.success"
	NotificationWarning EventType = "notification.warning"
	NotificationError   EventType = "notification.error"

	// Session events
	SessionLoggedIn  EventType = "session.logged_in"
	SessionLoggedOut EventType = "session.logged_out"

	// UI preference events
	UIThemeChanged    EventType = "ui.theme.changed"
	UILanguageChanged EventType = "ui.language.changed"

	// Navigation events
	NavigationRequested EventType = "navigation.requested"
)

// Event is a typed event delivered to subscribers
type Event[T any] struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Payload   T         `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationPayload carries a user-visible notification
type NotificationPayload struct {
	Title    string        `json:"title"`
	Message  string        `json:"message"`
	Level    string        `json:"level"`
	Duration time.Duration `json:"duration"`
}

// SessionPayload carries authentication state changes
type SessionPayload struct {
	Username string `json:"username,omitempty"`
}

// UIPayload carries presentation preference changes
type UIPayload struct {
	Theme    string `json:"theme,omitempty"`
	Language string `json:"language,omitempty"`
}

// NavigationPayload asks the presentation layer to move to a route
type NavigationPayload struct {
	Path string `json:"path"`
	// Redirect preserves the originally requested path so it can be
	// restored after a successful login.
	Redirect string `json:"redirect,omitempty"`
}
