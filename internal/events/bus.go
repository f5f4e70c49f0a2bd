package events

// Bus groups the typed brokers the client publishes on. One Bus is shared
// by the stores, the notification manager, and the presentation layer.
type Bus struct {
	Notifications *Broker[NotificationPayload]
	Session       *Broker[SessionPayload]
	UI            *Broker[UIPayload]
	Navigation    *Broker[NavigationPayload]
}

// NewBus creates a bus with all brokers initialized
func NewBus() *Bus {
	return &Bus{
		Notifications: NewBroker[NotificationPayload](),
		Session:       NewBroker[SessionPayload](),
		UI:            NewBroker[UIPayload](),
		Navigation:    NewBroker[NavigationPayload](),
	}
}

// Shutdown stops all brokers
func (b *Bus) Shutdown() {
	b.Notifications.Shutdown()
	b.Session.Shutdown()
	b.UI.Shutdown()
	b.Navigation.Shutdown()
}
