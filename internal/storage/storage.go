// /internal/storage/storage.go
package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/keshon/datastore"
)

const (
	commandHistoryLimit int = 20
	tracksHistoryLimit  int = 12
)

type Storage struct {
	ds     *datastore.DataStore
	cancel context.CancelFunc

	// mu is held across every read-modify-write of a guild record.
	mu sync.Mutex
}

type CommandHistoryRecord struct {
	ChannelID   string    `json:"channel_id"`
	ChannelName string    `json:"channel_name"`
	GuildName   string    `json:"guild_name"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Command     string    `json:"command"`
	Datetime    time.Time `json:"datetime"`
}

type TrackHistoryRecord struct {
	TrackID     string    `json:"track_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	RequestedBy string    `json:"requested_by"`
	PlayedAt    time.Time `json:"played_at"`
}

// Record is everything stored for a single guild.
type Record struct {
	CommandsHistoryList []CommandHistoryRecord `json:"cmd_history"`
	CommandsDisabled    []string               `json:"cmd_disabled"`
	CommandHashes       map[string]string      `json:"cmd_hashes"`
	TracksHistoryList   []TrackHistoryRecord   `json:"tracks_history"`
}

// New opens the datastore at filePath. Its autosave runs until Close.
func New(filePath string) (*Storage, error) {
	ctx, cancel := context.WithCancel(context.Background())
	ds, err := datastore.New(ctx, filePath)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open datastore: %w", err)
	}
	return &Storage{ds: ds, cancel: cancel}, nil
}

// Close stops the autosave and writes the store to disk one last time.
func (s *Storage) Close() error {
	s.cancel()
	return s.ds.Close()
}

// guildRecord loads the guild record, or an empty one for a new guild.
func (s *Storage) guildRecord(guildID string) (*Record, error) {
	var record Record
	if _, err := s.ds.Get(guildID, &record); err != nil {
		return nil, fmt.Errorf("failed to load guild record: %w", err)
	}

	if record.CommandHashes == nil {
		record.CommandHashes = map[string]string{}
	}
	if len(record.CommandsHistoryList) > commandHistoryLimit {
		record.CommandsHistoryList = record.CommandsHistoryList[len(record.CommandsHistoryList)-commandHistoryLimit:]
	}
	if len(record.TracksHistoryList) > tracksHistoryLimit {
		record.TracksHistoryList = record.TracksHistoryList[len(record.TracksHistoryList)-tracksHistoryLimit:]
	}
	return &record, nil
}

// view returns a snapshot of the guild record.
func (s *Storage) view(guildID string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guildRecord(guildID)
}

// update applies fn to the guild record and stores the result. fn returning
// false leaves the record untouched.
func (s *Storage) update(guildID string, fn func(*Record) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.guildRecord(guildID)
	if err != nil {
		return err
	}
	if !fn(record) {
		return nil
	}
	if err := s.ds.Set(guildID, record); err != nil {
		return fmt.Errorf("failed to save guild record: %w", err)
	}
	return nil
}
