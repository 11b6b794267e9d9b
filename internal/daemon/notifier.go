package daemon

import (
	"log/slog"
	"sync"
	"time"
)

// Submitter accepts toasts for display.
type Submitter interface {
	Submit(title, message string)
}

// InternalNotifier shows toasts about cliptoastd's own events.
// Repeats of the same event within the minimum interval are dropped.
type InternalNotifier struct {
	mu     sync.Mutex
	logger *slog.Logger
	sink   Submitter

	lastNotifyTime map[string]time.Time
	minInterval    time.Duration
	now            func() time.Time

	enabled bool
}

// NewInternalNotifier creates a new InternalNotifier that submits to sink.
func NewInternalNotifier(sink Submitter, logger *slog.Logger) *InternalNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &InternalNotifier{
		logger:         logger,
		sink:           sink,
		lastNotifyTime: make(map[string]time.Time),
		minInterval:    5 * time.Second,
		now:            time.Now,
		enabled:        true,
	}
}

// SetEnabled enables or disables internal notifications.
func (n *InternalNotifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// SetMinInterval sets the minimum interval between notifications with the same key.
func (n *InternalNotifier) SetMinInterval(interval time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.minInterval = interval
}

// Notify submits a toast unless the key was used within the minimum interval.
func (n *InternalNotifier) Notify(key, title, message string) {
	n.mu.Lock()
	if !n.enabled || n.sink == nil {
		n.mu.Unlock()
		return
	}

	now := n.now()
	if last, ok := n.lastNotifyTime[key]; ok && now.Sub(last) < n.minInterval {
		n.mu.Unlock()
		n.logger.Debug("internal notification rate-limited", "key", key)
		return
	}
	n.lastNotifyTime[key] = now
	sink := n.sink
	n.mu.Unlock()

	n.logger.Debug("sending internal notification", "key", key, "title", title)
	sink.Submit(title, message)
}

// NotifyConfigReloaded reports a successful config reload.
func (n *InternalNotifier) NotifyConfigReloaded() {
	n.Notify("config-reload", "Configuration Reloaded", "cliptoastd configuration has been reloaded.")
}

// NotifyConfigError reports a config file that failed to load.
func (n *InternalNotifier) NotifyConfigError(err error) {
	n.Notify("config-error", "Configuration Error", "Failed to reload configuration: "+err.Error())
}

// NotifyRestartRequired reports a changed setting that only applies after a restart.
func (n *InternalNotifier) NotifyRestartRequired(setting string) {
	n.Notify("restart-"+setting, "Restart Required", "Changes to "+setting+" take effect after cliptoastd restarts.")
}

// NotifyStyleReloaded reports that the toast stylesheet was reapplied.
func (n *InternalNotifier) NotifyStyleReloaded(path string) {
	if path == "" {
		path = "bundled stylesheet"
	}
	n.Notify("style-reload", "Style Reloaded", "Applied "+path+".")
}

// NotifyStartup reports that the daemon is running.
func (n *InternalNotifier) NotifyStartup(version string) {
	n.Notify("startup", "cliptoastd Started", "Toast daemon v"+version+" is now running.")
}

// NotifyAudioError reports a sound that could not be played.
func (n *InternalNotifier) NotifyAudioError(err error) {
	n.Notify("audio-error", "Audio Error", "Failed to play toast sound: "+err.Error())
}
