package dbus

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
)

func notifyMessage(iface, member string, body ...any) *dbus.Message {
	return &dbus.Message{
		Type: dbus.TypeMethodCall,
		Headers: map[dbus.HeaderField]dbus.Variant{
			dbus.FieldInterface: dbus.MakeVariant(iface),
			dbus.FieldMember:    dbus.MakeVariant(member),
		},
		Body: body,
	}
}

func TestParseNotify(t *testing.T) {
	msg := notifyMessage(notificationsInterface, notifyMember,
		"firefox", uint32(0), "firefox", "Download finished", "report.pdf",
		[]string{}, map[string]dbus.Variant{}, int32(-1))

	n, ok := parseNotify(msg)
	assert.True(t, ok)
	assert.Equal(t, DesktopNotification{AppName: "firefox", Summary: "Download finished", Body: "report.pdf"}, n)
}

func TestParseNotify_Rejects(t *testing.T) {
	tests := []struct {
		name string
		msg  *dbus.Message
	}{
		{"nil", nil},
		{"wrong member", notifyMessage(notificationsInterface, "CloseNotification", uint32(1))},
		{"wrong interface", notifyMessage("org.example.Other", notifyMember, "a", uint32(0), "", "s", "b")},
		{"short body", notifyMessage(notificationsInterface, notifyMember, "a", uint32(0))},
		{"bad summary type", notifyMessage(notificationsInterface, notifyMember, "a", uint32(0), "", 42, "b")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := parseNotify(tt.msg)
			assert.False(t, ok)
		})
	}

	reply := notifyMessage(notificationsInterface, notifyMember, "a", uint32(0), "", "s", "b")
	reply.Type = dbus.TypeSignal
	_, ok := parseNotify(reply)
	assert.False(t, ok)
}

func TestMirrorFilter(t *testing.T) {
	all := MirrorFilter{Ignore: []string{"Spotify"}}
	assert.True(t, all.Allow("firefox"))
	assert.False(t, all.Allow("spotify"))

	only := MirrorFilter{Apps: []string{"Slack", "thunderbird"}, Ignore: []string{"thunderbird"}}
	assert.True(t, only.Allow("slack"))
	assert.False(t, only.Allow("firefox"))
	assert.False(t, only.Allow("Thunderbird"))
}
