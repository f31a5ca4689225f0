package calendar

import (
	"strings"

	"github.com/labchat/labchat-server/pkg/model"
)

// Fallback palette used when an event type carries no explicit color, keyed
// by substring of the type name. Values match what the web client shipped.
const (
	ColorBooking = "#3B82F6" // blue
	ColorTask    = "#8B5CF6" // purple
	ColorMeeting = "#10B981" // green
)

// ResolveColor derives the presentation color of an event: the type's own
// color when set, otherwise a fallback by type-name substring, green as the
// last resort.
func ResolveColor(event model.Event) string {
	if event.Type == nil {
		return ColorMeeting
	}
	if event.Type.Color != "" {
		return event.Type.Color
	}

	name := strings.ToLower(event.Type.Name)
	switch {
	case strings.Contains(name, "equipment"), strings.Contains(name, "booking"):
		return ColorBooking
	case strings.Contains(name, "task"):
		return ColorTask
	case strings.Contains(name, "meeting"), strings.Contains(name, "training"):
		return ColorMeeting
	default:
		return ColorMeeting
	}
}
