package dbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jmylchreest/cliptoast/internal/toast"
)

const (
	// BusName is the well-known name the daemon claims.
	BusName = "io.github.jmylchreest.cliptoast"
	// Interface is the control interface name.
	Interface = "io.github.jmylchreest.cliptoast.Toasts"
	// ObjectPath is the control object path.
	ObjectPath = dbus.ObjectPath("/io/github/jmylchreest/cliptoast")

	statusTimeout = 2 * time.Second
)

// Backend is what the server drives. *toast.Inbox implements it.
type Backend interface {
	Submit(title, message string)
	DismissAll()
	Status(ctx context.Context) (toast.Status, error)
}

// Server exports the control interface.
type Server struct {
	conn    *dbus.Conn
	backend Backend
	logger  *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewServer creates a Server for backend.
func NewServer(backend Backend, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{backend: backend, logger: logger}
}

// Start connects to the session bus, exports the object and claims BusName.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("server already running")
	}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	if err := conn.Export(s, ObjectPath, Interface); err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to export object: %w", err)
	}

	node := &introspect.Node{
		Name: string(ObjectPath),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    Interface,
				Methods: controlMethods(),
				Signals: controlSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), ObjectPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		_ = conn.Close()
		return fmt.Errorf("bus name %s already taken, is cliptoastd already running?", BusName)
	}

	s.conn = conn
	s.running = true
	s.logger.Info("D-Bus control server started", "name", BusName, "path", ObjectPath)
	return nil
}

// Stop releases the bus name and closes the connection.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false

	if _, err := s.conn.ReleaseName(BusName); err != nil {
		s.logger.Warn("failed to release bus name", "error", err)
	}
	err := s.conn.Close()
	s.conn = nil
	s.logger.Info("D-Bus control server stopped")
	return err
}

// Enqueue implements the Enqueue D-Bus method.
func (s *Server) Enqueue(title, message string) *dbus.Error {
	s.logger.Debug("received Enqueue", "title", title)
	s.backend.Submit(title, message)
	return nil
}

// DismissAll implements the DismissAll D-Bus method.
func (s *Server) DismissAll() *dbus.Error {
	s.logger.Debug("received DismissAll")
	s.backend.DismissAll()
	return nil
}

// Status implements the Status D-Bus method. The reply is a JSON document.
func (s *Server) Status() (string, *dbus.Error) {
	ctx, cancel := context.WithTimeout(context.Background(), statusTimeout)
	defer cancel()

	st, err := s.backend.Status(ctx)
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	data, err := json.Marshal(st)
	if err != nil {
		return "", dbus.MakeFailedError(err)
	}
	return string(data), nil
}

// EmitShown emits the Shown signal for a newly visible toast.
func (s *Server) EmitShown(info toast.Info) error {
	return s.emit("Shown", info.ID, info.Title, info.Message)
}

// EmitDismissed emits the Dismissed signal for a click-dismissed toast.
func (s *Server) EmitDismissed(info toast.Info) error {
	return s.emit("Dismissed", info.ID, info.Title, info.Message)
}

func (s *Server) emit(member string, values ...any) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("not connected to D-Bus")
	}
	if err := conn.Emit(ObjectPath, Interface+"."+member, values...); err != nil {
		return fmt.Errorf("failed to emit %s signal: %w", member, err)
	}
	return nil
}

func controlMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "Enqueue",
			Args: []introspect.Arg{
				{Name: "title", Type: "s", Direction: "in"},
				{Name: "message", Type: "s", Direction: "in"},
			},
		},
		{
			Name: "DismissAll",
		},
		{
			Name: "Status",
			Args: []introspect.Arg{
				{Name: "status_json", Type: "s", Direction: "out"},
			},
		},
	}
}

func controlSignals() []introspect.Signal {
	toastArgs := []introspect.Arg{
		{Name: "id", Type: "s"},
		{Name: "title", Type: "s"},
		{Name: "message", Type: "s"},
	}
	return []introspect.Signal{
		{Name: "Shown", Args: toastArgs},
		{Name: "Dismissed", Args: toastArgs},
	}
}
