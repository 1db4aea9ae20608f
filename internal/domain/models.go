package domain

// RepeatMode controls what the player does when the current track ends.
// The integer values are stable and match the modes users see: 0 off, 1 track, 2 queue.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatTrack
	RepeatQueue
)

// Next returns the mode that follows m in the off -> track -> queue -> off cycle.
// Unknown values fall back to off.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatTrack
	case RepeatTrack:
		return RepeatQueue
	default:
		return RepeatOff
	}
}

func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "off"
	case RepeatTrack:
		return "track"
	case RepeatQueue:
		return "queue"
	default:
		return "unknown"
	}
}

// Requester identifies the member who asked for a track.
type Requester struct {
	ID          string
	Username    string
	DisplayName string
	AvatarURL   string
}

// Name returns the display name, falling back to the username.
func (r Requester) Name() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.Username
}

// Track is a snapshot of a queued track. Position is filled in by the player
// when the snapshot is taken and is not updated afterwards.
type Track struct {
	ID            string
	URL           string
	Title         string
	Author        string
	Duration      string  // formatted, e.g. "3:25"
	RawDuration   float64 // seconds; 0 for live streams
	Position      float64 // seconds elapsed
	Thumbnail     string
	AlbumCoverURL string
	Source        string
	RequestedBy   Requester
}

// Artwork returns the best image for the track: the album cover when known,
// otherwise the thumbnail.
func (t Track) Artwork() string {
	if t.AlbumCoverURL != "" {
		return t.AlbumCoverURL
	}
	return t.Thumbnail
}
