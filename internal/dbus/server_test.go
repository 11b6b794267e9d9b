package dbus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/cliptoast/internal/layout"
	"github.com/jmylchreest/cliptoast/internal/toast"
)

type fakeBackend struct {
	submitted  [][2]string
	dismissAll int
	status     toast.Status
	statusErr  error
}

func (b *fakeBackend) Submit(title, message string) {
	b.submitted = append(b.submitted, [2]string{title, message})
}

func (b *fakeBackend) DismissAll() {
	b.dismissAll++
}

func (b *fakeBackend) Status(context.Context) (toast.Status, error) {
	return b.status, b.statusErr
}

func TestServer_EnqueueAndDismiss(t *testing.T) {
	b := &fakeBackend{}
	s := NewServer(b, nil)

	assert.Nil(t, s.Enqueue("", "translated text"))
	assert.Nil(t, s.Enqueue("title", "body"))
	assert.Nil(t, s.DismissAll())

	assert.Equal(t, [][2]string{{"", "translated text"}, {"title", "body"}}, b.submitted)
	assert.Equal(t, 1, b.dismissAll)
}

func TestServer_StatusRoundTrip(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b := &fakeBackend{status: toast.Status{
		Anchor: layout.BottomLeft,
		Queued: []toast.QueuedItem{{Title: "next", Message: "m", QueuedAt: created}},
		Visible: []toast.Info{{
			ID:        "01HX",
			Title:     "now",
			State:     toast.StateLive,
			Slot:      0,
			Position:  layout.Point{X: 20, Y: 810},
			Target:    layout.Point{X: 20, Y: 810},
			Opacity:   1,
			HasMoved:  true,
			CreatedAt: created,
		}},
	}}
	s := NewServer(b, nil)

	raw, dbusErr := s.Status()
	require.Nil(t, dbusErr)

	var generic map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &generic))
	assert.Equal(t, "bottom-left", generic["anchor"])

	st, err := decodeStatus(raw)
	require.NoError(t, err)
	assert.Equal(t, b.status, st)
}

func TestServer_StatusError(t *testing.T) {
	s := NewServer(&fakeBackend{statusErr: errors.New("loop stalled")}, nil)
	_, dbusErr := s.Status()
	require.NotNil(t, dbusErr)
	assert.Equal(t, "org.freedesktop.DBus.Error.Failed", dbusErr.Name)
}

func TestServer_EmitWithoutConnection(t *testing.T) {
	s := NewServer(&fakeBackend{}, nil)
	assert.Error(t, s.EmitShown(toast.Info{ID: "x"}))
	assert.NoError(t, s.Stop())
}

func TestDecodeStatus_Invalid(t *testing.T) {
	_, err := decodeStatus("{not json")
	assert.Error(t, err)
}

func TestTranslateError(t *testing.T) {
	err := translateError("Status", dbus.Error{Name: serviceUnknown})
	assert.ErrorIs(t, err, ErrDaemonNotRunning)

	err = translateError("Status", &dbus.Error{Name: serviceUnknown})
	assert.ErrorIs(t, err, ErrDaemonNotRunning)

	err = translateError("Status", errors.New("boom"))
	assert.ErrorContains(t, err, "Status: boom")
}

func TestIntrospection(t *testing.T) {
	var names []string
	for _, m := range controlMethods() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"Enqueue", "DismissAll", "Status"}, names)
	assert.Len(t, controlSignals(), 2)
}
