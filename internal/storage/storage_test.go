package storage

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "datastore.json"))
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorage_CommandHistoryIsBounded(t *testing.T) {
	s := newTestStorage(t)

	for i := 0; i < commandHistoryLimit+5; i++ {
		if err := s.SetCommand("g1", "c1", "general", "guild", "u1", "alice", fmt.Sprintf("cmd-%d", i)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	history, err := s.FetchCommandHistory("g1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != commandHistoryLimit {
		t.Fatalf("expected %d records, got %d", commandHistoryLimit, len(history))
	}
	if last := history[len(history)-1].Command; last != fmt.Sprintf("cmd-%d", commandHistoryLimit+4) {
		t.Errorf("expected newest command last, got %q", last)
	}
}

func TestStorage_Groups(t *testing.T) {
	s := newTestStorage(t)

	disabled, err := s.IsGroupDisabled("g1", "music")
	if err != nil || disabled {
		t.Fatalf("expected enabled group on fresh guild, got disabled=%v err=%v", disabled, err)
	}

	if err := s.DisableGroup("g1", "music"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// disabling twice keeps a single entry
	if err := s.DisableGroup("g1", "music"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	groups, _ := s.GetDisabledGroups("g1")
	if len(groups) != 1 {
		t.Fatalf("expected one disabled group, got %v", groups)
	}

	if err := s.EnableGroup("g1", "music"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	disabled, _ = s.IsGroupDisabled("g1", "music")
	if disabled {
		t.Error("expected group to be enabled again")
	}
}

func TestStorage_CommandHashes(t *testing.T) {
	s := newTestStorage(t)

	in := map[string]string{"music-play": "abc"}
	if err := s.SetCommandHashes("g1", in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	in["music-play"] = "mutated"

	out, err := s.CommandHashes("g1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["music-play"] != "abc" {
		t.Errorf("expected stored hash to be isolated from caller map, got %q", out["music-play"])
	}
}

func TestStorage_TrackHistoryIsBounded(t *testing.T) {
	s := newTestStorage(t)

	for i := 0; i < tracksHistoryLimit+3; i++ {
		if err := s.AppendTrackHistory("g1", TrackHistoryRecord{Title: fmt.Sprintf("track-%d", i)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	tracks, err := s.FetchTrackHistory("g1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tracks) != tracksHistoryLimit {
		t.Fatalf("expected %d tracks, got %d", tracksHistoryLimit, len(tracks))
	}
	if tracks[0].PlayedAt.IsZero() {
		t.Error("expected PlayedAt to be stamped")
	}
}

func TestStorage_ConcurrentWritersKeepEveryChange(t *testing.T) {
	s := newTestStorage(t)

	const writers = 10
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			if err := s.SetCommand("g1", "c1", "general", "guild", "u1", "alice", fmt.Sprintf("cmd-%d", i)); err != nil {
				t.Errorf("SetCommand: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := s.AppendTrackHistory("g1", TrackHistoryRecord{Title: fmt.Sprintf("track-%d", i)}); err != nil {
				t.Errorf("AppendTrackHistory: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := s.SetCommandHashes("g1", map[string]string{"music-play": "abc"}); err != nil {
				t.Errorf("SetCommandHashes: %v", err)
			}
		}()
	}
	wg.Wait()

	history, _ := s.FetchCommandHistory("g1")
	if len(history) != writers {
		t.Errorf("expected %d commands, got %d", writers, len(history))
	}
	tracks, _ := s.FetchTrackHistory("g1")
	if len(tracks) != writers {
		t.Errorf("expected %d tracks, got %d", writers, len(tracks))
	}
	hashes, _ := s.CommandHashes("g1")
	if hashes["music-play"] != "abc" {
		t.Errorf("expected command hashes to survive, got %v", hashes)
	}
}

func TestStorage_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datastore.json")

	s, err := New(path)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	if err := s.DisableGroup("g1", "music"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("unexpected close error: %v", err)
	}

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("failed to reopen storage: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	disabled, err := reopened.IsGroupDisabled("g1", "music")
	if err != nil || !disabled {
		t.Errorf("expected the disabled group to be persisted, got disabled=%v err=%v", disabled, err)
	}
}
