package storage

import "time"

// AppendTrackHistory remembers a track that started playing in the guild.
func (s *Storage) AppendTrackHistory(guildID string, track TrackHistoryRecord) error {
	if track.PlayedAt.IsZero() {
		track.PlayedAt = time.Now()
	}
	return s.update(guildID, func(r *Record) bool {
		r.TracksHistoryList = append(r.TracksHistoryList, track)
		return true
	})
}

func (s *Storage) FetchTrackHistory(guildID string) ([]TrackHistoryRecord, error) {
	record, err := s.view(guildID)
	if err != nil {
		return nil, err
	}
	return record.TracksHistoryList, nil
}
