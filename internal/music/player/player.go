package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"tunecard/internal/domain"
)

// FrameDuration is the length of audio carried by one Opus frame.
const FrameDuration = 20 * time.Millisecond

const defaultHistoryLimit = 50

var (
	ErrNoTrackPlaying = errors.New("no track is currently playing")
	ErrQueueEmpty     = errors.New("no tracks in queue")
	ErrNoPrevious     = errors.New("no previous track")
	ErrSeekOutOfRange = errors.New("seek position is past the end of the track")
	ErrNotConnected   = errors.New("voice channel is not set")
)

// Opener turns a track into a PCM stream starting at seek.
type Opener interface {
	Open(ctx context.Context, track domain.Track, seek time.Duration) (io.ReadCloser, error)
}

// Output plays PCM into a voice channel.
type Output interface {
	Connect(channelID string) error
	// Stream plays pcm until it ends or ctx is done. wait blocks while
	// playback is paused; onFrame is called for every frame sent.
	Stream(ctx context.Context, pcm io.Reader, wait func(context.Context) error, onFrame func()) error
	Disconnect() error
}

// Metadata is the per-guild context attached to the player by commands.
type Metadata struct {
	TextChannelID string
	Requester     domain.Requester
}

type Options struct {
	LeaveOnEnd         bool
	LeaveOnEndCooldown time.Duration
	HistoryLimit       int
}

// Player owns the queue and playback of a single guild.
type Player struct {
	logger  *zap.Logger
	guildID string
	opener  Opener
	output  Output
	opts    Options

	// opMu serialises control operations and natural track advance.
	opMu sync.Mutex

	mu             sync.Mutex
	queue          []domain.Track
	history        []domain.Track
	current        *domain.Track
	repeat         domain.RepeatMode
	metadata       Metadata
	voiceChannelID string
	offset         time.Duration
	gen            uint64
	cancel         context.CancelFunc
	done           chan struct{}
	leaveTimer     *time.Timer

	frames atomic.Int64
	gate   *gate
	events chan Event
}

func New(logger *zap.Logger, guildID string, opener Opener, output Output, opts Options) *Player {
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = defaultHistoryLimit
	}
	return &Player{
		logger:  logger.With(zap.String("guild", guildID)),
		guildID: guildID,
		opener:  opener,
		output:  output,
		opts:    opts,
		gate:    newGate(),
		events:  make(chan Event, 32),
	}
}

func (p *Player) GuildID() string { return p.guildID }

// Events delivers lifecycle notifications. Events are dropped when nobody
// keeps up with the channel.
func (p *Player) Events() <-chan Event { return p.events }

// Enqueue appends tracks and returns the new queue length.
func (p *Player) Enqueue(tracks ...domain.Track) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append(p.queue, tracks...)
	p.logger.Debug("Enqueued", zap.Int("added", len(tracks)), zap.Int("queue", len(p.queue)))
	return len(p.queue)
}

// Play joins voiceChannelID and starts the next queued track. It is a no-op
// while a track is already loaded.
func (p *Player) Play(voiceChannelID string) error {
	p.opMu.Lock()
	defer p.opMu.Unlock()

	p.CancelLeave()

	p.mu.Lock()
	if p.current != nil {
		p.mu.Unlock()
		return nil
	}
	if voiceChannelID == "" {
		voiceChannelID = p.voiceChannelID
	}
	if voiceChannelID == "" {
		p.mu.Unlock()
		return ErrNotConnected
	}
	p.voiceChannelID = voiceChannelID
	p.mu.Unlock()

	if err := p.output.Connect(voiceChannelID); err != nil {
		return fmt.Errorf("failed to join voice channel: %w", err)
	}

	for {
		next, ok := p.popQueue()
		if !ok {
			return ErrQueueEmpty
		}
		err := p.startLocked(next, 0, true)
		if err == nil {
			return nil
		}
		p.logger.Warn("Skipping unplayable track", zap.String("title", next.Title), zap.Error(err))
		if p.QueueLen() == 0 {
			return err
		}
	}
}

// IsPlaying reports whether a track is loaded. A paused track counts as
// playing; use IsPaused to tell the two apart.
func (p *Player) IsPlaying() bool { return p.loaded() }

func (p *Player) IsPaused() bool { return p.gate.Paused() }

func (p *Player) RepeatMode() domain.RepeatMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.repeat
}

func (p *Player) SetRepeatMode(mode domain.RepeatMode) {
	p.mu.Lock()
	p.repeat = mode
	p.mu.Unlock()
	p.logger.Info("Repeat mode changed", zap.Stringer("mode", mode))
}

// Seek restarts the current track at pos. The pause state is kept.
func (p *Player) Seek(pos time.Duration) error {
	p.opMu.Lock()
	defer p.opMu.Unlock()

	p.mu.Lock()
	if p.current == nil {
		p.mu.Unlock()
		return ErrNoTrackPlaying
	}
	track := *p.current
	p.mu.Unlock()

	if pos < 0 {
		pos = 0
	}
	if track.RawDuration > 0 && pos.Seconds() > track.RawDuration {
		return ErrSeekOutOfRange
	}

	paused := p.gate.Paused()
	if err := p.startLocked(track, pos, false); err != nil {
		return err
	}
	if paused {
		p.gate.Close()
	}
	p.logger.Info("Seeked", zap.String("title", track.Title), zap.Duration("position", pos))
	return nil
}

func (p *Player) Pause() error {
	if !p.loaded() {
		return ErrNoTrackPlaying
	}
	p.gate.Close()
	p.emit(Event{Type: EventPaused})
	return nil
}

func (p *Player) Resume() error {
	if !p.loaded() {
		return ErrNoTrackPlaying
	}
	p.gate.Open()
	p.emit(Event{Type: EventResumed})
	return nil
}

// TogglePause pauses a playing track or resumes a paused one and reports
// whether the player is now paused.
func (p *Player) TogglePause() (bool, error) {
	if p.gate.Paused() {
		return false, p.Resume()
	}
	return true, p.Pause()
}

// Skip moves to the next track, ignoring track repeat.
func (p *Player) Skip() error {
	p.opMu.Lock()
	defer p.opMu.Unlock()

	p.mu.Lock()
	if p.current == nil {
		p.mu.Unlock()
		return ErrNoTrackPlaying
	}
	finished := *p.current
	p.mu.Unlock()

	p.pushHistory(finished)
	return p.advanceLocked(finished, true)
}

// Back plays the previous track and puts the current one back at the front
// of the queue.
func (p *Player) Back() error {
	p.opMu.Lock()
	defer p.opMu.Unlock()

	p.mu.Lock()
	if len(p.history) == 0 {
		p.mu.Unlock()
		return ErrNoPrevious
	}
	prev := p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]
	if p.current != nil {
		p.queue = slices.Insert(p.queue, 0, *p.current)
	}
	p.mu.Unlock()

	return p.startLocked(prev, 0, true)
}

// Stop ends playback, clears the queue and leaves the voice channel.
func (p *Player) Stop() error {
	p.opMu.Lock()
	defer p.opMu.Unlock()

	p.CancelLeave()
	p.stopRunLocked()

	p.mu.Lock()
	p.queue = nil
	p.current = nil
	p.repeat = domain.RepeatOff
	p.voiceChannelID = ""
	p.metadata = Metadata{}
	p.mu.Unlock()
	p.gate.Open()

	err := p.output.Disconnect()
	p.emit(Event{Type: EventStopped})
	p.logger.Info("Playback stopped")
	return err
}

// Current returns a snapshot of the loaded track with its position filled in.
func (p *Player) Current() (domain.Track, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return domain.Track{}, false
	}
	t := *p.current
	t.Position = p.positionLocked().Seconds()
	return t, true
}

func (p *Player) Queue() []domain.Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.queue)
}

func (p *Player) QueueLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

func (p *Player) History() []domain.Track {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.history)
}

func (p *Player) Metadata() Metadata {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.metadata
}

func (p *Player) SetMetadata(m Metadata) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.metadata = m
}

func (p *Player) VoiceChannelID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.voiceChannelID
}

// ScheduleLeave stops the player after d unless CancelLeave or Play is
// called first.
func (p *Player) ScheduleLeave(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.leaveTimer != nil {
		p.leaveTimer.Stop()
	}
	p.leaveTimer = time.AfterFunc(d, func() {
		p.logger.Info("Leaving voice channel after inactivity", zap.Duration("after", d))
		if err := p.Stop(); err != nil {
			p.logger.Warn("Leave failed", zap.Error(err))
		}
	})
}

func (p *Player) CancelLeave() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.leaveTimer != nil {
		p.leaveTimer.Stop()
		p.leaveTimer = nil
	}
}

func (p *Player) loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil
}

func (p *Player) positionLocked() time.Duration {
	return p.offset + time.Duration(p.frames.Load())*FrameDuration
}

func (p *Player) popQueue() (domain.Track, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.queue) == 0 {
		return domain.Track{}, false
	}
	t := p.queue[0]
	p.queue = p.queue[1:]
	return t, true
}

func (p *Player) pushHistory(t domain.Track) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.history = append(p.history, t)
	if len(p.history) > p.opts.HistoryLimit {
		p.history = p.history[len(p.history)-p.opts.HistoryLimit:]
	}
}

// nextLocked picks the track that follows finished. manual is true for an
// explicit skip, which ignores track repeat.
func (p *Player) nextLocked(finished domain.Track, manual bool) (domain.Track, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.repeat {
	case domain.RepeatTrack:
		if !manual {
			return finished, true
		}
	case domain.RepeatQueue:
		p.queue = append(p.queue, finished)
	}

	if len(p.queue) == 0 {
		return domain.Track{}, false
	}
	t := p.queue[0]
	p.queue = p.queue[1:]
	return t, true
}

// advanceLocked starts whatever follows finished, or ends the session when
// nothing does. Caller holds opMu.
func (p *Player) advanceLocked(finished domain.Track, manual bool) error {
	for failures := 0; ; failures++ {
		next, ok := p.nextLocked(finished, manual)
		if !ok || failures > p.QueueLen() {
			p.endLocked()
			return nil
		}

		err := p.startLocked(next, 0, true)
		if err == nil {
			return nil
		}
		p.logger.Warn("Skipping unplayable track", zap.String("title", next.Title), zap.Error(err))
		if next.ID == finished.ID {
			// a repeated track that no longer opens would loop forever
			manual = true
		}
		finished = next
	}
}

func (p *Player) endLocked() {
	p.stopRunLocked()
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()
	p.gate.Open()

	p.emit(Event{Type: EventQueueEnd})
	p.logger.Info("Queue finished")
	if p.opts.LeaveOnEnd {
		p.ScheduleLeave(p.opts.LeaveOnEndCooldown)
	}
}

// onTrackEnd runs after a playback goroutine finished on its own.
func (p *Player) onTrackEnd(gen uint64, streamErr error) {
	p.opMu.Lock()
	defer p.opMu.Unlock()

	p.mu.Lock()
	if gen != p.gen || p.current == nil {
		p.mu.Unlock()
		return
	}
	finished := *p.current
	p.mu.Unlock()

	if streamErr != nil {
		p.logger.Error("Playback error", zap.String("title", finished.Title), zap.Error(streamErr))
		p.emit(Event{Type: EventError, Track: &finished, Err: streamErr})
	}
	p.emit(Event{Type: EventTrackEnd, Track: &finished})
	p.pushHistory(finished)

	if err := p.advanceLocked(finished, false); err != nil {
		p.logger.Error("Failed to advance queue", zap.Error(err))
	}
}

// stopRunLocked cancels the playback goroutine and waits for it. Caller
// holds opMu.
func (p *Player) stopRunLocked() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.gen++
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// startLocked opens track at seek and launches its playback goroutine.
// Caller holds opMu.
func (p *Player) startLocked(track domain.Track, seek time.Duration, announce bool) error {
	p.stopRunLocked()

	ctx, cancel := context.WithCancel(context.Background())
	pcm, err := p.opener.Open(ctx, track, seek)
	if err != nil {
		cancel()
		// the previous run is already gone, so nothing stays loaded
		p.mu.Lock()
		p.current = nil
		p.offset = 0
		p.frames.Store(0)
		p.mu.Unlock()
		p.gate.Open()

		p.emit(Event{Type: EventError, Track: &track, Err: err})
		return fmt.Errorf("failed to open stream for %q: %w", track.Title, err)
	}

	done := make(chan struct{})

	p.mu.Lock()
	p.gen++
	gen := p.gen
	p.current = &track
	p.offset = seek
	p.frames.Store(0)
	p.cancel, p.done = cancel, done
	p.mu.Unlock()
	p.gate.Open()

	go p.run(ctx, gen, pcm, done)

	if announce {
		snapshot := track
		p.emit(Event{Type: EventTrackStart, Track: &snapshot})
		p.logger.Info("Now playing", zap.String("title", track.Title), zap.String("url", track.URL))
	}
	return nil
}

func (p *Player) run(ctx context.Context, gen uint64, pcm io.ReadCloser, done chan struct{}) {
	err := p.output.Stream(ctx, pcm, p.gate.Wait, func() { p.frames.Add(1) })
	_ = pcm.Close()
	close(done)

	if ctx.Err() != nil {
		return
	}
	go p.onTrackEnd(gen, err)
}

func (p *Player) emit(e Event) {
	e.GuildID = p.guildID
	select {
	case p.events <- e:
	default:
		p.logger.Warn("Player event dropped (channel full)", zap.Stringer("event", e.Type))
	}
}
