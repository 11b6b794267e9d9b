package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/cliptoast/internal/toast"
)

// WaybarStatus represents the Waybar custom module JSON format.
type WaybarStatus struct {
	Text       string `json:"text"`
	Alt        string `json:"alt,omitempty"`
	Tooltip    string `json:"tooltip,omitempty"`
	Class      string `json:"class,omitempty"`
	Percentage int    `json:"percentage,omitempty"`
}

// WaybarFormatter formats status for a Waybar custom module.
type WaybarFormatter struct{}

// NewWaybarFormatter creates a new Waybar formatter.
func NewWaybarFormatter() *WaybarFormatter {
	return &WaybarFormatter{}
}

// Format writes the status as one line of Waybar JSON.
func (f *WaybarFormatter) Format(w io.Writer, st toast.Status) error {
	return json.NewEncoder(w).Encode(Waybar(st))
}

// Waybar builds the Waybar representation of st.
func Waybar(st toast.Status) WaybarStatus {
	total := len(st.Visible) + len(st.Queued)
	if total == 0 {
		return WaybarStatus{Alt: "empty", Class: "empty"}
	}

	class := "visible"
	if len(st.Queued) > 0 {
		class = "queued"
	}

	var lines []string
	for _, info := range st.Visible {
		lines = append(lines, displayTitle(info.Title))
	}
	if len(st.Queued) > 0 {
		lines = append(lines, fmt.Sprintf("+%d queued", len(st.Queued)))
	}

	return WaybarStatus{
		Text:       fmt.Sprintf("%d", total),
		Alt:        class,
		Tooltip:    strings.Join(lines, "\n"),
		Class:      class,
		Percentage: min(len(st.Visible)*100/toast.VisibleLimit, 100),
	}
}
