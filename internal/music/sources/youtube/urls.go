package youtube

import (
	"strings"

	melodixyt "github.com/keshon/melodix/pkg/music/sources/youtube"
)

func isYouTubeVideoURL(s string) bool {
	return strings.Contains(s, "youtube.com/watch?v=") ||
		strings.Contains(s, "youtu.be/") ||
		strings.Contains(s, "youtube.com/shorts/")
}

// normalizeVideoURL rewrites shorts to watch links and strips playlist and
// tracking parameters.
func normalizeVideoURL(raw string) string {
	if _, after, ok := strings.Cut(raw, "youtube.com/shorts/"); ok {
		id, _, _ := strings.Cut(after, "?")
		if id = strings.Trim(id, "/"); id != "" {
			return "https://www.youtube.com/watch?v=" + id
		}
	}
	return melodixyt.CleanVideoURL(raw)
}
