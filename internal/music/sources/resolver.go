package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tunecard/internal/domain"
)

// Resolver picks a source for the input and stamps resolved tracks.
type Resolver struct {
	logger  *zap.Logger
	sources map[string]Source
	order   []string
}

func NewResolver(logger *zap.Logger, srcs ...Source) *Resolver {
	r := &Resolver{logger: logger, sources: make(map[string]Source, len(srcs))}
	for _, s := range srcs {
		r.sources[s.SourceName()] = s
		r.order = append(r.order, s.SourceName())
	}
	return r
}

// Resolve turns input into tracks. source is a source name or "auto"/"" for
// detection: free text goes to YouTube search, URLs to the first matching
// source and anything else to the direct link source.
func (r *Resolver) Resolve(ctx context.Context, input, source string, requester domain.Requester) ([]domain.Track, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrNoResults
	}

	src, err := r.pick(input, source)
	if err != nil {
		return nil, err
	}

	tracks, err := src.Resolve(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.SourceName(), err)
	}
	if len(tracks) == 0 {
		return nil, ErrNoResults
	}

	for i := range tracks {
		tracks[i].ID = uuid.NewString()
		tracks[i].Source = src.SourceName()
		tracks[i].RequestedBy = requester
	}

	r.logger.Debug("Resolved input",
		zap.String("input", input),
		zap.String("source", src.SourceName()),
		zap.Int("tracks", len(tracks)))
	return tracks, nil
}

// StreamURL asks the source that resolved track for its playable URL.
func (r *Resolver) StreamURL(ctx context.Context, track domain.Track) (string, error) {
	src, ok := r.sources[track.Source]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, track.Source)
	}
	return src.StreamURL(ctx, track)
}

func (r *Resolver) pick(input, source string) (Source, error) {
	if source != "" && source != SourceAuto {
		src, ok := r.sources[source]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
		}
		if !IsURL(input) {
			if source != SourceYouTube {
				return nil, fmt.Errorf("title search is only supported on %s", SourceYouTube)
			}
			return src, nil
		}
		if !src.Match(input) {
			return nil, fmt.Errorf("input does not match selected source: %s", source)
		}
		return src, nil
	}

	if !IsURL(input) {
		yt, ok := r.sources[SourceYouTube]
		if !ok {
			return nil, fmt.Errorf("%s source not available for title search", SourceYouTube)
		}
		return yt, nil
	}

	for _, name := range r.order {
		if name == SourceLink {
			continue
		}
		if s := r.sources[name]; s.Match(input) {
			return s, nil
		}
	}
	if link, ok := r.sources[SourceLink]; ok {
		return link, nil
	}
	return nil, ErrNoResults
}
