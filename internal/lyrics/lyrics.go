// Package lyrics looks up song lyrics on an LRCLIB-compatible API.
package lyrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"tunecard/internal/config"
	"tunecard/pkg/retrylimit"
)

// ErrNotFound is returned when no result carries plain lyrics.
var ErrNotFound = errors.New("lyrics not found")

const maxAttempts = 3 // first try plus two retries

// Lyrics is a single lookup result.
type Lyrics struct {
	Title    string
	Artist   string
	Album    string
	Duration float64
	Plain    string
	Synced   string
}

type searchResult struct {
	ID           int64   `json:"id"`
	TrackName    string  `json:"trackName"`
	ArtistName   string  `json:"artistName"`
	AlbumName    string  `json:"albumName"`
	Duration     float64 `json:"duration"`
	Instrumental bool    `json:"instrumental"`
	PlainLyrics  string  `json:"plainLyrics"`
	SyncedLyrics string  `json:"syncedLyrics"`
}

type statusError struct {
	code int
}

func (e *statusError) Error() string   { return fmt.Sprintf("lyrics api returned status %d", e.code) }
func (e *statusError) StatusCode() int { return e.code }

// Client talks to the lyrics API.
type Client struct {
	logger  *zap.Logger
	http    *http.Client
	baseURL string
	limiter *retrylimit.AdaptiveLimiter
	retry   retrylimit.RetryConfig
}

func NewClient(logger *zap.Logger, opts config.LyricsOptions) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	retry := retrylimit.DefaultRetryConfig()
	retry.MaxAttempts = maxAttempts
	retry.OnRetry = func(attempt int, err error) {
		logger.Warn("Lyrics request failed, retrying", zap.Int("attempt", attempt), zap.Error(err))
	}

	return &Client{
		logger:  logger,
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		limiter: retrylimit.NewAdaptiveLimiter(2, 1, 5, 1, 0.5),
		retry:   retry,
	}
}

// Find returns the first result with plain lyrics for title and artist.
func (c *Client) Find(ctx context.Context, title, artist string) (*Lyrics, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrNotFound
	}

	q := url.Values{}
	q.Set("track_name", title)
	if artist = strings.TrimSpace(artist); artist != "" {
		q.Set("artist_name", artist)
	}
	endpoint := c.baseURL + "/api/search?" + q.Encode()

	var results []searchResult
	err := retrylimit.WithRetryConfig(ctx, func() error {
		var err error
		results, err = c.search(ctx, endpoint)
		return err
	}, c.limiter, c.retry)
	if err != nil {
		return nil, fmt.Errorf("search lyrics: %w", err)
	}

	for _, r := range results {
		if r.Instrumental || strings.TrimSpace(r.PlainLyrics) == "" {
			continue
		}
		c.logger.Debug("Lyrics found", zap.Int64("id", r.ID), zap.String("title", r.TrackName))
		return &Lyrics{
			Title:    r.TrackName,
			Artist:   r.ArtistName,
			Album:    r.AlbumName,
			Duration: r.Duration,
			Plain:    r.PlainLyrics,
			Synced:   r.SyncedLyrics,
		}, nil
	}
	return nil, ErrNotFound
}

func (c *Client) search(ctx context.Context, endpoint string) ([]searchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &retrylimit.FatalError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode}
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return results, nil
}

// Excerpt trims lyrics to at most limit runes, cutting at a line break when
// one is available, so they fit in a Discord embed.
func Excerpt(text string, limit int) string {
	r := []rune(text)
	if len(r) <= limit {
		return text
	}
	cut := string(r[:limit])
	if i := strings.LastIndex(cut, "\n"); i > 0 {
		cut = cut[:i]
	}
	return cut + "\n…"
}
