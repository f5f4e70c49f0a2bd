package notifications

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/entrepeneur4lyf/sqlpilot/internal/events"
)

// Level represents the severity level of a notification
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification represents a single user-visible notification
type Notification struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Message   string        `json:"message"`
	Level     Level         `json:"level"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// Notifier is the side-effect sink the API client and the stores report
// through. The manager implements it; tests substitute a recorder.
type Notifier interface {
	Info(title, message string)
	Success(title, message string)
	Warning(title, message string)
	Error(title, message string)
}

// Options contains options for creating notifications
type Options struct {
	Duration time.Duration
}

// Option is a function that modifies Options
type Option func(*Options)

// WithDuration sets a custom display duration for the notification
func WithDuration(duration time.Duration) Option {
	return func(opts *Options) {
		opts.Duration = duration
	}
}

// Manager creates notifications and publishes them on the event bus.
// It keeps a bounded record of recent notifications for inspection.
type Manager struct {
	bus              *events.Bus
	mu               sync.RWMutex
	recent           []Notification
	maxRecent        int
	defaultDurations map[Level]time.Duration
}

// NewManager creates a new notification manager
func NewManager(bus *events.Bus) *Manager {
	return &Manager{
		bus:       bus,
		maxRecent: 100,
		defaultDurations: map[Level]time.Duration{
			LevelInfo:    5 * time.Second,
			LevelSuccess: 3 * time.Second,
			LevelWarning: 10 * time.Second,
			LevelError:   8 * time.Second,
		},
	}
}

// Notify creates a notification and publishes it on the bus
func (m *Manager) Notify(title, message string, level Level, opts ...Option) Notification {
	options := &Options{
		Duration: m.defaultDurations[level],
	}
	for _, opt := range opts {
		opt(options)
	}

	notification := Notification{
		ID:        uuid.New().String(),
		Title:     title,
		Message:   message,
		Level:     level,
		Duration:  options.Duration,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.recent = append(m.recent, notification)
	if len(m.recent) > m.maxRecent {
		m.recent = m.recent[len(m.recent)-m.maxRecent:]
	}
	m.mu.Unlock()

	if m.bus != nil {
		eventType := events.NotificationInfo
		switch level {
		case LevelSuccess:
			eventType = events.NotificationSuccess
		case LevelWarning:
			eventType = events.NotificationWarning
		case LevelError:
			eventType = events.NotificationError
		}

		m.bus.Notifications.Publish(eventType, events.NotificationPayload{
			Title:    title,
			Message:  message,
			Level:    string(level),
			Duration: notification.Duration,
		})
	}

	return notification
}

// Recent returns a copy of the most recent notifications, newest last
func (m *Manager) Recent() []Notification {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Notification, len(m.recent))
	copy(out, m.recent)
	return out
}

// Info creates an info notification
func (m *Manager) Info(title, message string) {
	m.Notify(title, message, LevelInfo)
}

// Success creates a success notification
func (m *Manager) Success(title, message string) {
	m.Notify(title, message, LevelSuccess)
}

// Warning creates a warning notification
func (m *Manager) Warning(title, message string) {
	m.Notify(title, message, LevelWarning)
}

// Error creates an error notification
func (m *Manager) Error(title, message string) {
	m.Notify(title, message, LevelError)
}
