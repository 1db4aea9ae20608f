package stream

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"time"

	"go.uber.org/zap"

	"tunecard/internal/config"
	"tunecard/internal/domain"
)

const (
	channels   = 2
	sampleRate = 48000
	frameSize  = 960 // 20ms at 48kHz
)

// URLResolver turns a track into a URL ffmpeg can read.
type URLResolver interface {
	StreamURL(ctx context.Context, track domain.Track) (string, error)
}

// FFmpeg opens tracks as s16le 48kHz stereo PCM.
type FFmpeg struct {
	logger   *zap.Logger
	path     string
	volume   int
	resolver URLResolver
}

func NewFFmpeg(logger *zap.Logger, opts config.PlayerOptions, resolver URLResolver) *FFmpeg {
	path := opts.FFmpegPath
	if path == "" {
		path = "ffmpeg"
	}
	return &FFmpeg{logger: logger, path: path, volume: opts.Volume, resolver: resolver}
}

// Open resolves the stream URL of track and starts ffmpeg at seek. Closing
// the returned reader stops ffmpeg.
func (f *FFmpeg) Open(ctx context.Context, track domain.Track, seek time.Duration) (io.ReadCloser, error) {
	link, err := f.resolver.StreamURL(ctx, track)
	if err != nil {
		return nil, fmt.Errorf("resolve stream url: %w", err)
	}

	cmd := exec.CommandContext(ctx, f.path, buildArgs(link, seek, f.volume)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe error: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("command start error: %w", err)
	}

	f.logger.Debug("ffmpeg started",
		zap.String("title", track.Title),
		zap.Duration("seek", seek),
		zap.Int("pid", cmd.Process.Pid))

	return &process{ReadCloser: stdout, cmd: cmd}, nil
}

func buildArgs(input string, seek time.Duration, volume int) []string {
	args := []string{
		"-reconnect", "1",
		"-reconnect_streamed", "1",
		"-reconnect_delay_max", "5",
	}
	if seek > 0 {
		args = append(args, "-ss", fmt.Sprintf("%.3f", seek.Seconds()))
	}
	args = append(args, "-i", input, "-vn")
	if volume > 0 && volume != 100 {
		args = append(args, "-af", "volume="+strconv.FormatFloat(float64(volume)/100, 'f', 2, 64))
	}
	return append(args,
		"-f", "s16le",
		"-ar", strconv.Itoa(sampleRate),
		"-ac", strconv.Itoa(channels),
		"-loglevel", "warning",
		"pipe:1",
	)
}

type process struct {
	io.ReadCloser
	cmd *exec.Cmd
}

func (p *process) Close() error {
	_ = p.ReadCloser.Close()
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	_ = p.cmd.Wait()
	return nil
}
