package sources

import (
	"context"
	"errors"
	"strings"

	"tunecard/internal/domain"
)

const (
	SourceAuto    = "auto"
	SourceYouTube = "youtube"
	SourceLink    = "link"
)

var (
	ErrNoResults     = errors.New("no results found")
	ErrUnknownSource = errors.New("unknown source")
)

// Source resolves user input into tracks and tracks into playable URLs.
type Source interface {
	// Match checks if this source can handle the given URL
	Match(input string) bool

	// Resolve turns an input into one or more tracks. ID, Source and
	// RequestedBy are stamped by the Resolver.
	Resolve(ctx context.Context, input string) ([]domain.Track, error)

	// StreamURL returns a URL ffmpeg can read for a resolved track.
	StreamURL(ctx context.Context, track domain.Track) (string, error)

	SourceName() string
}

func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
