// Package link plays direct audio URLs and internet radio streams.
package link

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"tunecard/internal/domain"
	"tunecard/internal/music/sources"
)

var validContentTypes = []string{
	"audio/",
	"video/",
	"application/vnd.apple.mpegurl",
	"application/x-mpegurl",
	"application/ogg",
	"application/x-scpls",
	"application/xspf+xml",
	"application/octet-stream", // risky but often used for streams
}

// Source validates stream links by their headers and plays them as is.
type Source struct {
	logger *zap.Logger
	client *http.Client
}

func New(logger *zap.Logger) *Source {
	return &Source{
		logger: logger,
		client: &http.Client{
			Timeout: 5 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
	}
}

func (s *Source) SourceName() string { return sources.SourceLink }

func (s *Source) Match(input string) bool {
	return sources.IsURL(input)
}

func (s *Source) Resolve(ctx context.Context, input string) ([]domain.Track, error) {
	info, err := s.probe(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content type: %w", err)
	}

	if !isAllowedType(info.contentType) && !isLikelyPlaylist(info.finalURL) {
		return nil, fmt.Errorf("invalid stream content-type: %q, url: %s", info.contentType, info.finalURL)
	}

	u, _ := url.Parse(info.finalURL)
	title := info.name
	if title == "" {
		title = titleFromPath(u)
	}
	author := ""
	if u != nil {
		author = u.Hostname()
	}

	return []domain.Track{{
		URL:    input,
		Title:  title,
		Author: author,
	}}, nil
}

func (s *Source) StreamURL(_ context.Context, track domain.Track) (string, error) {
	return track.URL, nil
}

type probeInfo struct {
	contentType string
	finalURL    string
	name        string
}

// probe sends HEAD, falling back to GET for servers that reject it. Radio
// servers announce the station name in icy-name.
func (s *Source) probe(ctx context.Context, rawURL string) (probeInfo, error) {
	resp, err := s.do(ctx, http.MethodHead, rawURL)
	if err != nil || resp.StatusCode >= 400 {
		if resp != nil {
			resp.Body.Close()
		}
		resp, err = s.do(ctx, http.MethodGet, rawURL)
		if err != nil {
			return probeInfo{}, fmt.Errorf("GET fallback failed: %w", err)
		}
	}
	defer resp.Body.Close()
	if resp.Request.Method == http.MethodGet {
		// streams never end, read just enough to keep the connection sane
		_, _ = io.CopyN(io.Discard, resp.Body, 512)
	}

	if resp.StatusCode >= 400 {
		return probeInfo{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return probeInfo{
		contentType: resp.Header.Get("Content-Type"),
		finalURL:    resp.Request.URL.String(),
		name:        strings.TrimSpace(resp.Header.Get("icy-name")),
	}, nil
}

func (s *Source) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Icy-MetaData", "1")
	return s.client.Do(req)
}

func isAllowedType(contentType string) bool {
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	for _, allowed := range validContentTypes {
		if strings.HasPrefix(contentType, allowed) {
			return true
		}
	}
	return false
}

func isLikelyPlaylist(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	switch strings.ToLower(path.Ext(u.Path)) {
	case ".m3u", ".m3u8", ".pls", ".xspf", ".asx":
		return true
	}
	return false
}

func titleFromPath(u *url.URL) string {
	if u == nil {
		return "Live stream"
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" || base == "" {
		return u.Hostname()
	}
	if unescaped, err := url.PathUnescape(base); err == nil {
		base = unescaped
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
