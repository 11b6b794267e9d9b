package dbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/cliptoast/internal/toast"
)

// ErrDaemonNotRunning is returned when nothing owns BusName.
var ErrDaemonNotRunning = errors.New("cliptoastd is not running")

const serviceUnknown = "org.freedesktop.DBus.Error.ServiceUnknown"

// Client talks to a running cliptoastd.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// NewClient connects to the session bus.
func NewClient() (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return &Client{
		conn: conn,
		obj:  conn.Object(BusName, ObjectPath),
	}, nil
}

// Close closes the bus connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Enqueue queues a toast.
func (c *Client) Enqueue(ctx context.Context, title, message string) error {
	return c.call(ctx, "Enqueue", title, message).Store()
}

// DismissAll closes every toast and clears the queue.
func (c *Client) DismissAll(ctx context.Context) error {
	return c.call(ctx, "DismissAll").Store()
}

// Status fetches the daemon's current status.
func (c *Client) Status(ctx context.Context) (toast.Status, error) {
	var raw string
	if err := c.call(ctx, "Status").Store(&raw); err != nil {
		return toast.Status{}, err
	}
	return decodeStatus(raw)
}

func (c *Client) call(ctx context.Context, method string, args ...any) *dbus.Call {
	call := c.obj.CallWithContext(ctx, Interface+"."+method, 0, args...)
	if call.Err != nil {
		call.Err = translateError(method, call.Err)
	}
	return call
}

func translateError(method string, err error) error {
	var name string
	var dbusErr dbus.Error
	var dbusErrPtr *dbus.Error
	switch {
	case errors.As(err, &dbusErr):
		name = dbusErr.Name
	case errors.As(err, &dbusErrPtr):
		name = dbusErrPtr.Name
	}
	if name == serviceUnknown {
		return ErrDaemonNotRunning
	}
	return fmt.Errorf("%s: %w", method, err)
}

func decodeStatus(raw string) (toast.Status, error) {
	var st toast.Status
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return toast.Status{}, fmt.Errorf("failed to decode status: %w", err)
	}
	return st, nil
}
