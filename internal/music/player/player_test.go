package player

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"tunecard/internal/domain"
)

type openCall struct {
	id   string
	seek time.Duration
}

// fakeOpener hands out a reader that carries the track ID.
type fakeOpener struct {
	mu    sync.Mutex
	calls []openCall
	fail  map[string]bool
}

func (o *fakeOpener) Open(_ context.Context, track domain.Track, seek time.Duration) (io.ReadCloser, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, openCall{id: track.ID, seek: seek})
	if o.fail[track.ID] {
		return nil, errors.New("unavailable")
	}
	return io.NopCloser(strings.NewReader(track.ID)), nil
}

func (o *fakeOpener) setFail(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fail == nil {
		o.fail = map[string]bool{}
	}
	o.fail[id] = true
}

func (o *fakeOpener) opens() []openCall {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]openCall(nil), o.calls...)
}

// fakeOutput reports every stream it starts and plays until told to finish.
type fakeOutput struct {
	started   chan string
	finish    chan struct{}
	frames    int
	connected string
	left      chan struct{}
}

func newFakeOutput(frames int) *fakeOutput {
	return &fakeOutput{
		started: make(chan string, 16),
		finish:  make(chan struct{}),
		frames:  frames,
		left:    make(chan struct{}, 1),
	}
}

func (o *fakeOutput) Connect(channelID string) error {
	o.connected = channelID
	return nil
}

func (o *fakeOutput) Stream(ctx context.Context, pcm io.Reader, wait func(context.Context) error, onFrame func()) error {
	id, _ := io.ReadAll(pcm)
	for i := 0; i < o.frames; i++ {
		if err := wait(ctx); err != nil {
			return nil
		}
		onFrame()
	}
	o.started <- string(id)

	select {
	case <-o.finish:
		return nil
	case <-ctx.Done():
		return nil
	}
}

func (o *fakeOutput) Disconnect() error {
	select {
	case o.left <- struct{}{}:
	default:
	}
	return nil
}

// endTrack lets the running stream finish on its own.
func (o *fakeOutput) endTrack(t *testing.T) {
	t.Helper()
	select {
	case o.finish <- struct{}{}:
	case <-time.After(2 * time.Second):
		t.Fatal("no stream was running")
	}
}

func expectStarted(t *testing.T, out *fakeOutput, id string) {
	t.Helper()
	select {
	case got := <-out.started:
		if got != id {
			t.Fatalf("expected %q to start, got %q", id, got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %q to start", id)
	}
}

func expectEvent(t *testing.T, p *Player, want EventType) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case e := <-p.Events():
			if e.Type == want {
				return e
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func tracks(ids ...string) []domain.Track {
	out := make([]domain.Track, len(ids))
	for i, id := range ids {
		out[i] = domain.Track{ID: id, Title: "title-" + id, RawDuration: 180}
	}
	return out
}

func newTestPlayer(opener Opener, out Output) *Player {
	return New(zap.NewNop(), "g1", opener, out, Options{})
}

func TestPlayer_PlaysQueueInOrder(t *testing.T) {
	opener, out := &fakeOpener{}, newFakeOutput(0)
	p := newTestPlayer(opener, out)
	p.Enqueue(tracks("a", "b")...)

	if err := p.Play("voice-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.connected != "voice-1" {
		t.Errorf("expected to join voice-1, got %q", out.connected)
	}

	expectStarted(t, out, "a")
	if e := expectEvent(t, p, EventTrackStart); e.Track.ID != "a" || e.GuildID != "g1" {
		t.Errorf("unexpected start event %+v", e)
	}

	out.endTrack(t)
	expectStarted(t, out, "b")

	out.endTrack(t)
	expectEvent(t, p, EventQueueEnd)

	if p.IsPlaying() {
		t.Error("expected player to be idle after the queue ended")
	}
	if h := p.History(); len(h) != 2 || h[0].ID != "a" || h[1].ID != "b" {
		t.Errorf("unexpected history %v", h)
	}
}

func TestPlayer_RepeatTrackReplays(t *testing.T) {
	opener, out := &fakeOpener{}, newFakeOutput(0)
	p := newTestPlayer(opener, out)
	p.Enqueue(tracks("a", "b")...)
	p.SetRepeatMode(domain.RepeatTrack)

	if err := p.Play("voice-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectStarted(t, out, "a")

	out.endTrack(t)
	expectStarted(t, out, "a")

	// a manual skip moves on even with track repeat
	if err := p.Skip(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectStarted(t, out, "b")
}

func TestPlayer_RepeatQueueRequeues(t *testing.T) {
	opener, out := &fakeOpener{}, newFakeOutput(0)
	p := newTestPlayer(opener, out)
	p.Enqueue(tracks("a", "b")...)
	p.SetRepeatMode(domain.RepeatQueue)

	if err := p.Play("voice-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectStarted(t, out, "a")
	out.endTrack(t)
	expectStarted(t, out, "b")
	out.endTrack(t)
	expectStarted(t, out, "a")

	if q := p.Queue(); len(q) != 1 || q[0].ID != "b" {
		t.Errorf("expected b to be queued again, got %v", q)
	}
}

func TestPlayer_SeekRestartsWithoutAnnouncing(t *testing.T) {
	opener, out := &fakeOpener{}, newFakeOutput(50)
	p := newTestPlayer(opener, out)
	p.Enqueue(tracks("a")...)

	if err := p.Play("voice-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectStarted(t, out, "a")
	expectEvent(t, p, EventTrackStart)

	cur, ok := p.Current()
	if !ok || cur.Position != 1 {
		t.Fatalf("expected position 1s after 50 frames, got %v (ok=%v)", cur.Position, ok)
	}

	if err := p.Seek(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectStarted(t, out, "a")

	calls := opener.opens()
	if len(calls) != 2 || calls[1].id != "a" || calls[1].seek != 0 {
		t.Errorf("unexpected open calls %v", calls)
	}

	select {
	case e := <-p.Events():
		if e.Type == EventTrackStart {
			t.Error("seek must not announce a new track")
		}
	default:
	}
}

func TestPlayer_SeekKeepsPauseState(t *testing.T) {
	opener, out := &fakeOpener{}, newFakeOutput(0)
	p := newTestPlayer(opener, out)
	p.Enqueue(tracks("a")...)

	if err := p.Play("voice-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectStarted(t, out, "a")

	if err := p.Pause(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.IsPlaying() {
		t.Error("expected a paused track to still count as playing")
	}

	if err := p.Seek(10 * time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.IsPaused() {
		t.Error("expected seek to keep the player paused")
	}

	if err := p.Resume(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.IsPlaying() || p.IsPaused() {
		t.Error("expected playback after resume")
	}
}

func TestPlayer_RepeatModeWhilePaused(t *testing.T) {
	opener, out := &fakeOpener{}, newFakeOutput(0)
	p := newTestPlayer(opener, out)
	p.Enqueue(tracks("a", "b")...)

	_ = p.Play("voice-1")
	expectStarted(t, out, "a")
	if err := p.Pause(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p.SetRepeatMode(domain.RepeatTrack)
	if got := p.RepeatMode(); got != domain.RepeatTrack {
		t.Fatalf("expected track repeat, got %v", got)
	}
	if err := p.Resume(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out.endTrack(t)
	expectStarted(t, out, "a")
}

func TestPlayer_FailedSeekUnloadsTrack(t *testing.T) {
	opener, out := &fakeOpener{}, newFakeOutput(0)
	p := newTestPlayer(opener, out)
	p.Enqueue(tracks("a")...)

	_ = p.Play("voice-1")
	expectStarted(t, out, "a")
	if err := p.Pause(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opener.setFail("a")
	if err := p.Seek(5 * time.Second); err == nil {
		t.Fatal("expected seek to fail")
	}
	expectEvent(t, p, EventError)

	if p.IsPlaying() || p.IsPaused() {
		t.Error("expected nothing loaded after a failed seek")
	}
	if _, ok := p.Current(); ok {
		t.Error("expected no current track")
	}
	if err := p.Seek(0); !errors.Is(err, ErrNoTrackPlaying) {
		t.Errorf("expected ErrNoTrackPlaying, got %v", err)
	}

	p.Enqueue(tracks("b")...)
	if err := p.Play(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectStarted(t, out, "b")
}

func TestPlayer_FailedBackUnloadsTrack(t *testing.T) {
	opener, out := &fakeOpener{}, newFakeOutput(0)
	p := newTestPlayer(opener, out)
	p.Enqueue(tracks("a", "b")...)

	_ = p.Play("voice-1")
	expectStarted(t, out, "a")
	_ = p.Skip()
	expectStarted(t, out, "b")

	opener.setFail("a")
	if err := p.Back(); err == nil {
		t.Fatal("expected back to fail")
	}
	if p.IsPlaying() {
		t.Error("expected nothing loaded after a failed back")
	}

	if err := p.Play(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectStarted(t, out, "b")
}

func TestPlayer_SeekOutOfRange(t *testing.T) {
	opener, out := &fakeOpener{}, newFakeOutput(0)
	p := newTestPlayer(opener, out)
	p.Enqueue(tracks("a")...)
	_ = p.Play("voice-1")
	expectStarted(t, out, "a")

	if err := p.Seek(time.Hour); !errors.Is(err, ErrSeekOutOfRange) {
		t.Fatalf("expected ErrSeekOutOfRange, got %v", err)
	}
}

func TestPlayer_ControlsWithoutTrack(t *testing.T) {
	p := newTestPlayer(&fakeOpener{}, newFakeOutput(0))

	if err := p.Seek(0); !errors.Is(err, ErrNoTrackPlaying) {
		t.Errorf("Seek: expected ErrNoTrackPlaying, got %v", err)
	}
	if err := p.Resume(); !errors.Is(err, ErrNoTrackPlaying) {
		t.Errorf("Resume: expected ErrNoTrackPlaying, got %v", err)
	}
	if err := p.Skip(); !errors.Is(err, ErrNoTrackPlaying) {
		t.Errorf("Skip: expected ErrNoTrackPlaying, got %v", err)
	}
	if err := p.Back(); !errors.Is(err, ErrNoPrevious) {
		t.Errorf("Back: expected ErrNoPrevious, got %v", err)
	}
	if err := p.Play("voice-1"); !errors.Is(err, ErrQueueEmpty) {
		t.Errorf("Play: expected ErrQueueEmpty, got %v", err)
	}
	if p.IsPlaying() {
		t.Error("expected IsPlaying to be false")
	}
}

func TestPlayer_BackRequeuesCurrent(t *testing.T) {
	opener, out := &fakeOpener{}, newFakeOutput(0)
	p := newTestPlayer(opener, out)
	p.Enqueue(tracks("a", "b")...)

	_ = p.Play("voice-1")
	expectStarted(t, out, "a")
	_ = p.Skip()
	expectStarted(t, out, "b")

	if err := p.Back(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectStarted(t, out, "a")

	if q := p.Queue(); len(q) != 1 || q[0].ID != "b" {
		t.Errorf("expected b back at the front of the queue, got %v", q)
	}
}

func TestPlayer_SkipsUnplayableTracks(t *testing.T) {
	opener, out := &fakeOpener{fail: map[string]bool{"bad": true}}, newFakeOutput(0)
	p := newTestPlayer(opener, out)
	p.Enqueue(tracks("bad", "good")...)

	if err := p.Play("voice-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expectStarted(t, out, "good")
}

func TestPlayer_StopClearsEverything(t *testing.T) {
	opener, out := &fakeOpener{}, newFakeOutput(0)
	p := newTestPlayer(opener, out)
	p.Enqueue(tracks("a", "b")...)
	p.SetRepeatMode(domain.RepeatQueue)
	_ = p.Play("voice-1")
	expectStarted(t, out, "a")

	if err := p.Stop(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := p.Current(); ok {
		t.Error("expected no current track")
	}
	if len(p.Queue()) != 0 {
		t.Error("expected empty queue")
	}
	if p.RepeatMode() != domain.RepeatOff {
		t.Error("expected repeat mode reset")
	}
	select {
	case <-out.left:
	default:
		t.Error("expected the voice channel to be left")
	}
}

func TestPlayer_LeavesAfterQueueEnd(t *testing.T) {
	opener, out := &fakeOpener{}, newFakeOutput(0)
	p := New(zap.NewNop(), "g1", opener, out, Options{LeaveOnEnd: true, LeaveOnEndCooldown: 10 * time.Millisecond})
	p.Enqueue(tracks("a")...)

	_ = p.Play("voice-1")
	expectStarted(t, out, "a")
	out.endTrack(t)

	select {
	case <-out.left:
	case <-time.After(2 * time.Second):
		t.Fatal("expected the player to leave after the queue ended")
	}
}
