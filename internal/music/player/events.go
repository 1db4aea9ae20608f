package player

import "tunecard/internal/domain"

type EventType int

const (
	EventTrackStart EventType = iota
	EventTrackEnd
	EventQueueEnd
	EventPaused
	EventResumed
	EventStopped
	EventError
)

func (t EventType) String() string {
	switch t {
	case EventTrackStart:
		return "track_start"
	case EventTrackEnd:
		return "track_end"
	case EventQueueEnd:
		return "queue_end"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	case EventStopped:
		return "stopped"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a player lifecycle notification. Track is a snapshot taken when
// the event was emitted.
type Event struct {
	Type    EventType
	GuildID string
	Track   *domain.Track
	Err     error
}
