package store

import "time"

// KanjiReading is a kanji headword paired with one of its kana readings
// (a headword may have several rows; Common marks the usual ones), imported
// from JMdict and consulted when drafting furigana for
// unannotated lyric lines.
type KanjiReading struct {
	ID      int64
	Kanji   string
	Reading string
	Common  bool
}

// ScoreFile is the provenance record for a loaded score sheet: its
// metadata plus where on disk it came from.
type ScoreFile struct {
	ID                    int64
	Path                  string
	Title                 string
	SongAuthor            string
	Singer                string
	ScoreAuthor           string
	BPM                   string
	SongData              string
	LastAnnotatedLine     int
	LoadedAt              time.Time
}

// PlayResult is one completed (or abandoned) play of a ScoreFile: the
// game's own high-score table.
type PlayResult struct {
	ID              int64
	ScoreFileID     int64
	ScorePoint      int
	Accuracy        float64
	AchievementRate float64
	PlayedAt        time.Time
}
