package x11

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notifyService   = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	notifyInterface = "org.freedesktop.Notifications"
)

// Notifier sends transient desktop notifications over the session bus,
// used for the "window hidden to tray" hint.
type Notifier struct {
	conn *dbus.Conn
}

// NewNotifier connects to the session bus.
func NewNotifier() (*Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Notifier{conn: conn}, nil
}

// Notify shows a transient notification that expires on its own.
func (n *Notifier) Notify(appName, summary, body string) error {
	obj := n.conn.Object(notifyService, dbus.ObjectPath(notifyPath))
	call := obj.Call(notifyInterface+".Notify", 0,
		appName,
		uint32(0), // no notification to replace
		"",        // icon resolved by the host theme
		summary,
		body,
		[]string{},
		map[string]dbus.Variant{},
		int32(5000),
	)
	if call.Err != nil {
		return fmt.Errorf("failed to send notification: %w", call.Err)
	}
	return nil
}

// Close releases the bus connection.
func (n *Notifier) Close() error {
	return n.conn.Close()
}
