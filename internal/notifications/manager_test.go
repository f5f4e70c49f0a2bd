package notifications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrepeneur4lyf/sqlpilot/internal/events"
)

func TestManagerPublishesOnBus(t *testing.T) {
	bus := events.NewBus()
	defer bus.Shutdown()

	ch, unsubscribe := bus.Notifications.Subscribe()
	defer unsubscribe()

	manager := NewManager(bus)
	manager.Error("Backend", "Server error. Please try again later.")

	event := <-ch
	assert.Equal(t, events.NotificationError, event.Type)
	assert.Equal(t, "Backend", event.Payload.Title)
	assert.Equal(t, "Server error. Please try again later.", event.Payload.Message)
	assert.Equal(t, "error", event.Payload.Level)
	assert.Equal(t, 8*time.Second, event.Payload.Duration)
}

func TestManagerLevelEventTypes(t *testing.T) {
	bus := events.NewBus()
	defer bus.Shutdown()

	ch, unsubscribe := bus.Notifications.Subscribe()
	defer unsubscribe()

	manager := NewManager(bus)
	manager.Info("t", "m")
	manager.Success("t", "m")
	manager.Warning("t", "m")

	assert.Equal(t, events.NotificationInfo, (<-ch).Type)
	assert.Equal(t, events.NotificationSuccess, (<-ch).Type)
	assert.Equal(t, events.NotificationWarning, (<-ch).Type)
}

func TestManagerCustomDuration(t *testing.T) {
	manager := NewManager(nil)

	notification := manager.Notify("t", "m", LevelInfo, WithDuration(time.Minute))
	assert.Equal(t, time.Minute, notification.Duration)
	assert.NotEmpty(t, notification.ID)
}

func TestManagerRecentIsBounded(t *testing.T) {
	manager := NewManager(nil)

	for i := 0; i < manager.maxRecent+10; i++ {
		manager.Info("t", "m")
	}

	recent := manager.Recent()
	require.Len(t, recent, manager.maxRecent)
}
