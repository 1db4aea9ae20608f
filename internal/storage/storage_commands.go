package storage

import (
	"maps"
	"slices"
	"time"
)

// SetCommand appends a command execution to the guild history.
func (s *Storage) SetCommand(guildID, channelID, channelName, guildName, userID, username, command string) error {
	entry := CommandHistoryRecord{
		ChannelID:   channelID,
		ChannelName: channelName,
		GuildName:   guildName,
		UserID:      userID,
		Username:    username,
		Command:     command,
		Datetime:    time.Now(),
	}
	return s.update(guildID, func(r *Record) bool {
		r.CommandsHistoryList = append(r.CommandsHistoryList, entry)
		return true
	})
}

func (s *Storage) FetchCommandHistory(guildID string) ([]CommandHistoryRecord, error) {
	record, err := s.view(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandsHistoryList, nil
}

func (s *Storage) DisableGroup(guildID, group string) error {
	return s.update(guildID, func(r *Record) bool {
		if slices.Contains(r.CommandsDisabled, group) {
			return false
		}
		r.CommandsDisabled = append(r.CommandsDisabled, group)
		return true
	})
}

func (s *Storage) EnableGroup(guildID, group string) error {
	return s.update(guildID, func(r *Record) bool {
		r.CommandsDisabled = slices.DeleteFunc(r.CommandsDisabled, func(g string) bool {
			return g == group
		})
		return true
	})
}

func (s *Storage) IsGroupDisabled(guildID, group string) (bool, error) {
	record, err := s.view(guildID)
	if err != nil {
		return false, err
	}
	return slices.Contains(record.CommandsDisabled, group), nil
}

func (s *Storage) GetDisabledGroups(guildID string) ([]string, error) {
	record, err := s.view(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandsDisabled, nil
}

// CommandHashes returns the definition hashes of the slash commands last
// registered for the guild, keyed by command name.
func (s *Storage) CommandHashes(guildID string) (map[string]string, error) {
	record, err := s.view(guildID)
	if err != nil {
		return nil, err
	}
	return maps.Clone(record.CommandHashes), nil
}

func (s *Storage) SetCommandHashes(guildID string, hashes map[string]string) error {
	return s.update(guildID, func(r *Record) bool {
		r.CommandHashes = maps.Clone(hashes)
		return true
	})
}
