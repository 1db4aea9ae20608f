package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	melodixyt "github.com/keshon/melodix/pkg/music/sources/youtube"
	youtube "github.com/kkdai/youtube/v2"
	"go.uber.org/zap"

	"tunecard/internal/domain"
	"tunecard/internal/music/sources"
)

// Source resolves YouTube links and free text searches. Link matching and
// the results page search come from melodix, metadata and stream URLs from
// kkdai.
type Source struct {
	logger   *zap.Logger
	client   *youtube.Client
	matcher  *melodixyt.Source
	searcher *melodixyt.Searcher
}

func New(logger *zap.Logger) *Source {
	httpClient := &http.Client{Timeout: 15 * time.Second}
	searcher := melodixyt.NewSearcher()
	searcher.Client = httpClient
	return &Source{
		logger:   logger,
		client:   &youtube.Client{HTTPClient: httpClient},
		matcher:  melodixyt.New(),
		searcher: searcher,
	}
}

func (s *Source) SourceName() string { return sources.SourceYouTube }

func (s *Source) Match(input string) bool {
	return s.matcher.Match(input)
}

func (s *Source) Resolve(ctx context.Context, input string) ([]domain.Track, error) {
	videoURL, err := s.videoURL(ctx, input)
	if err != nil {
		return nil, err
	}

	video, err := s.client.GetVideoContext(ctx, videoURL)
	if err != nil {
		return nil, fmt.Errorf("youtube client error: %w", err)
	}

	return []domain.Track{trackFromVideo(videoURL, video)}, nil
}

// videoURL turns a link or a search query into a single watch URL.
func (s *Source) videoURL(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)

	switch {
	case isYouTubeVideoURL(input):
		return normalizeVideoURL(input), nil
	case sources.IsURL(input):
		return "", errors.New("invalid YouTube URL format")
	}

	// the searcher has no context support, so honor cancellation around it
	if err := ctx.Err(); err != nil {
		return "", err
	}
	u, err := s.searcher.SearchFirstVideoURL(input)
	if err != nil {
		if errors.Is(err, melodixyt.ErrNoVideoMatch) {
			return "", sources.ErrNoResults
		}
		return "", fmt.Errorf("could not find YouTube video for query: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return u, nil
}

// StreamURL picks the best audio format of the video.
func (s *Source) StreamURL(ctx context.Context, track domain.Track) (string, error) {
	video, err := s.client.GetVideoContext(ctx, track.URL)
	if err != nil {
		return "", fmt.Errorf("youtube client error: %w", err)
	}

	format, ok := bestAudio(video.Formats.WithAudioChannels())
	if !ok {
		return "", errors.New("no audio formats found for video")
	}

	link, err := s.client.GetStreamURLContext(ctx, video, format)
	if err != nil {
		return "", fmt.Errorf("get stream URL error: %w", err)
	}
	s.logger.Debug("Resolved stream", zap.String("video", video.ID), zap.Int("itag", format.ItagNo))
	return link, nil
}

func trackFromVideo(videoURL string, video *youtube.Video) domain.Track {
	return domain.Track{
		URL:         videoURL,
		Title:       video.Title,
		Author:      video.Author,
		Duration:    formatDuration(video.Duration),
		RawDuration: video.Duration.Seconds(),
		Thumbnail:   bestThumbnail(video.Thumbnails),
	}
}

// bestAudio prefers audio-only formats, then the highest bitrate.
func bestAudio(formats youtube.FormatList) (*youtube.Format, bool) {
	var best *youtube.Format
	for i := range formats {
		f := &formats[i]
		if best == nil {
			best = f
			continue
		}
		fAudio := strings.HasPrefix(f.MimeType, "audio/")
		bAudio := strings.HasPrefix(best.MimeType, "audio/")
		if fAudio != bAudio {
			if fAudio {
				best = f
			}
			continue
		}
		if f.Bitrate > best.Bitrate {
			best = f
		}
	}
	return best, best != nil
}

func bestThumbnail(thumbs youtube.Thumbnails) string {
	var (
		url  string
		area uint
	)
	for _, t := range thumbs {
		if a := t.Width * t.Height; url == "" || a > area {
			url, area = t.URL, a
		}
	}
	return url
}

// formatDuration renders d as m:ss, or h:mm:ss for long videos. Live
// streams have no duration.
func formatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	total := int64(d.Seconds())
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
