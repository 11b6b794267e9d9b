package dbus

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsInterface = "org.freedesktop.Notifications"
	notifyMember           = "Notify"
)

// DesktopNotification is the part of an org.freedesktop.Notifications Notify
// call that becomes a toast.
type DesktopNotification struct {
	AppName string
	Summary string
	Body    string
}

// MirrorFilter selects which applications are mirrored. An empty Apps list
// allows every application not listed in Ignore.
type MirrorFilter struct {
	Apps   []string
	Ignore []string
}

// Allow reports whether notifications from app should be mirrored.
func (f MirrorFilter) Allow(app string) bool {
	app = strings.ToLower(app)
	if slices.ContainsFunc(f.Ignore, func(s string) bool { return strings.ToLower(s) == app }) {
		return false
	}
	if len(f.Apps) == 0 {
		return true
	}
	return slices.ContainsFunc(f.Apps, func(s string) bool { return strings.ToLower(s) == app })
}

// Mirror passively observes desktop notifications without claiming the
// notification service, so it runs alongside the user's notification daemon.
type Mirror struct {
	conn    *dbus.Conn
	logger  *slog.Logger
	filter  MirrorFilter
	handler func(DesktopNotification)
}

// NewMirror creates a Mirror that passes allowed notifications to handler.
func NewMirror(filter MirrorFilter, handler func(DesktopNotification), logger *slog.Logger) *Mirror {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mirror{
		logger:  logger,
		filter:  filter,
		handler: handler,
	}
}

// Start begins monitoring the session bus.
func (m *Mirror) Start() error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	m.conn = conn

	rules := []string{
		fmt.Sprintf("type='method_call',interface='%s',member='%s'", notificationsInterface, notifyMember),
	}
	err = conn.BusObject().Call(
		"org.freedesktop.DBus.Monitoring.BecomeMonitor",
		0,
		rules,
		uint32(0),
	).Err
	if err != nil {
		// Older buses lack BecomeMonitor; eavesdropping may still be permitted.
		m.logger.Warn("BecomeMonitor not available, trying AddMatch", "error", err)
		matchRule := rules[0] + ",eavesdrop='true'"
		if err := conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, matchRule).Err; err != nil {
			_ = conn.Close()
			return fmt.Errorf("failed to add match rule (eavesdrop may require permissions): %w", err)
		}
	}

	m.logger.Info("mirroring desktop notifications")
	go m.processMessages()
	return nil
}

func (m *Mirror) processMessages() {
	ch := make(chan *dbus.Message, 100)
	m.conn.Eavesdrop(ch)

	for msg := range ch {
		n, ok := parseNotify(msg)
		if !ok {
			continue
		}
		if !m.filter.Allow(n.AppName) {
			m.logger.Debug("skipping notification", "app", n.AppName)
			continue
		}
		m.logger.Debug("mirroring notification", "app", n.AppName, "summary", n.Summary)
		m.handler(n)
	}
}

// parseNotify extracts a DesktopNotification from a Notify method call.
// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout)
func parseNotify(msg *dbus.Message) (DesktopNotification, bool) {
	if msg == nil || msg.Type != dbus.TypeMethodCall {
		return DesktopNotification{}, false
	}
	iface, _ := msg.Headers[dbus.FieldInterface].Value().(string)
	member, _ := msg.Headers[dbus.FieldMember].Value().(string)
	if iface != notificationsInterface || member != notifyMember {
		return DesktopNotification{}, false
	}
	if len(msg.Body) < 5 {
		return DesktopNotification{}, false
	}

	var n DesktopNotification
	var ok bool
	if n.AppName, ok = msg.Body[0].(string); !ok {
		return DesktopNotification{}, false
	}
	if n.Summary, ok = msg.Body[3].(string); !ok {
		return DesktopNotification{}, false
	}
	if n.Body, ok = msg.Body[4].(string); !ok {
		return DesktopNotification{}, false
	}
	return n, true
}

// Stop closes the monitoring connection.
func (m *Mirror) Stop() error {
	if m.conn != nil {
		return m.conn.Close()
	}
	return nil
}
