package storage

import "time"

// TableSize is the number of ranks in a high-score table.
const TableSize = 10

// EmptyName marks an unclaimed rank.
const EmptyName = "---"

// Record is one rank of a high-score table.
type Record struct {
	Rank  int
	Name  string
	Score int
	Level int
	Date  time.Time
}

// Empty reports whether the rank is unclaimed.
func (r Record) Empty() bool {
	return r.Name == EmptyName && r.Score == 0
}

// EmptyRecord returns the placeholder for an unclaimed rank.
func EmptyRecord(rank int) Record {
	return Record{Rank: rank, Name: EmptyName}
}

// EmptyTable returns TableSize unclaimed ranks.
func EmptyTable() []Record {
	out := make([]Record, TableSize)
	for i := range out {
		out[i] = EmptyRecord(i + 1)
	}
	return out
}

// HighScoreTable returns exactly TableSize ranked records for gameID,
// padded with empty records. A nil store or a failed query yields the
// empty table; the failure is logged, not returned.
func (s *Store) HighScoreTable(gameID string) []Record {
	table := EmptyTable()
	if s == nil || s.db == nil {
		return table
	}
	entries, err := s.TopScores(gameID, TableSize)
	if err != nil {
		s.log.Warn("high-score table unavailable, using empty table", "game", gameID, "err", err)
		return table
	}
	for i, e := range entries {
		name := e.Name
		if name == "" {
			name = "ANON"
		}
		table[i] = Record{Rank: i + 1, Name: name, Score: e.Score, Level: e.Level, Date: e.CreatedAt}
	}
	return table
}

// Qualifies reports whether score would enter the high-score table.
func (s *Store) Qualifies(gameID string, score int) bool {
	if score <= 0 {
		return false
	}
	table := s.HighScoreTable(gameID)
	last := table[len(table)-1]
	return last.Empty() || score > last.Score
}
