package stream

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"layeh.com/gopus"
)

var ErrNotConnected = errors.New("not connected to a voice channel")

// DiscordOutput encodes PCM to Opus and sends it to a guild voice connection.
type DiscordOutput struct {
	logger  *zap.Logger
	session *discordgo.Session
	guildID string

	mu sync.Mutex
	vc *discordgo.VoiceConnection
}

func NewDiscordOutput(logger *zap.Logger, session *discordgo.Session, guildID string) *DiscordOutput {
	return &DiscordOutput{logger: logger, session: session, guildID: guildID}
}

// Connect joins channelID, reusing the current connection when it is
// already there.
func (d *DiscordOutput) Connect(channelID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.vc != nil && d.vc.ChannelID == channelID {
		return nil
	}

	vc, err := d.session.ChannelVoiceJoin(d.guildID, channelID, false, true)
	if err != nil {
		return fmt.Errorf("failed to join voice channel: %w", err)
	}
	d.vc = vc
	d.logger.Info("Joined voice channel", zap.String("guild", d.guildID), zap.String("channel", channelID))
	return nil
}

func (d *DiscordOutput) Disconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.vc == nil {
		return nil
	}
	err := d.vc.Disconnect()
	d.vc = nil
	return err
}

// Stream reads 20ms PCM frames until pcm ends or ctx is done.
func (d *DiscordOutput) Stream(ctx context.Context, pcm io.Reader, wait func(context.Context) error, onFrame func()) error {
	d.mu.Lock()
	vc := d.vc
	d.mu.Unlock()
	if vc == nil {
		return ErrNotConnected
	}

	encoder, err := gopus.NewEncoder(sampleRate, channels, gopus.Audio)
	if err != nil {
		return fmt.Errorf("encoder error: %w", err)
	}

	_ = vc.Speaking(true)
	defer func() { _ = vc.Speaking(false) }()

	pcmBuf := make([]byte, frameSize*channels*2)
	intBuf := make([]int16, frameSize*channels)

	for {
		if err := wait(ctx); err != nil {
			return nil
		}

		if _, err := io.ReadFull(pcm, pcmBuf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read error: %w", err)
		}

		for i := range intBuf {
			intBuf[i] = int16(binary.LittleEndian.Uint16(pcmBuf[i*2 : i*2+2]))
		}

		opus, err := encoder.Encode(intBuf, frameSize, len(pcmBuf))
		if err != nil {
			return fmt.Errorf("encode error: %w", err)
		}

		select {
		case vc.OpusSend <- opus:
			onFrame()
		case <-ctx.Done():
			return nil
		}
	}
}
