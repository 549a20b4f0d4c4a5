package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// DBExecutor is satisfied by both *sql.DB and *sql.Tx, so callers can run
// these helpers either directly or inside a transaction.
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

func isUniqueConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "unique") || strings.Contains(s, "constraint failed")
}

// CreateOrGetKanjiReading inserts a kanji/reading pair, or returns the
// existing row's id if it was already imported.
func CreateOrGetKanjiReading(db DBExecutor, kanji, reading string, common bool) (int64, error) {
	kanji = strings.TrimSpace(kanji)
	if kanji == "" {
		return 0, fmt.Errorf("kanji must be non-empty")
	}
	var id int64
	err := db.QueryRow(
		`INSERT INTO kanji_readings (kanji, reading, common) VALUES (?, ?, ?)
		 ON CONFLICT(kanji, reading) DO UPDATE SET common = common OR excluded.common
		 RETURNING id`,
		kanji, reading, common,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert kanji reading: %w", err)
	}
	return id, nil
}

// LookupReadings returns every known reading for a kanji headword, most
// common first.
func LookupReadings(db DBExecutor, kanji string) ([]KanjiReading, error) {
	rows, err := db.Query(
		`SELECT id, kanji, reading, common FROM kanji_readings WHERE kanji = ? ORDER BY common DESC, id ASC`,
		kanji,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []KanjiReading
	for rows.Next() {
		var r KanjiReading
		if err := rows.Scan(&r.ID, &r.Kanji, &r.Reading, &r.Common); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CreateOrGetScoreFile returns the existing score_files row for path, or
// inserts one from the given metadata.
func CreateOrGetScoreFile(db DBExecutor, path string, meta map[string]string) (int64, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return 0, fmt.Errorf("path must be non-empty")
	}

	const maxRetries = 3
	var id int64
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := db.QueryRow(`SELECT id FROM score_files WHERE path = ?`, path).Scan(&id)
		if err == nil {
			return id, nil
		}
		if err != sql.ErrNoRows {
			return 0, err
		}

		res, err := db.Exec(
			`INSERT INTO score_files (path, title, song_author, singer, score_author, bpm, song_data)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			path, meta["title"], meta["song_author"], meta["singer"], meta["score_author"], meta["bpm"], meta["song_data"],
		)
		if err != nil {
			if isUniqueConstraintErr(err) {
				continue
			}
			return 0, err
		}
		return res.LastInsertId()
	}
	return 0, fmt.Errorf("could not create or get score file after %d retries", maxRetries)
}

// GetScoreFileProgress returns the last annotated lyric-line index for a
// score file, the checkpoint the annotation pipeline resumes from.
func GetScoreFileProgress(db DBExecutor, scoreFileID int64) (int, error) {
	var index int
	err := db.QueryRow(`SELECT last_annotated_line FROM score_files WHERE id = ?`, scoreFileID).Scan(&index)
	if err != nil {
		return 0, err
	}
	return index, nil
}

// UpdateScoreFileProgress checkpoints how far the annotation pipeline has
// gotten through a score file's lyric lines.
func UpdateScoreFileProgress(db DBExecutor, scoreFileID int64, index int) error {
	_, err := db.Exec(`UPDATE score_files SET last_annotated_line = ? WHERE id = ?`, index, scoreFileID)
	return err
}

// RecordPlayResult saves the final GameScore of a play session against its
// score file, the local equivalent of a high-score table.
func RecordPlayResult(db DBExecutor, scoreFileID int64, scorePoint int, accuracy, achievementRate float64) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO play_results (score_file_id, score_point, accuracy, achievement_rate) VALUES (?, ?, ?, ?)`,
		scoreFileID, scorePoint, accuracy, achievementRate,
	)
	if err != nil {
		return 0, fmt.Errorf("record play result: %w", err)
	}
	return res.LastInsertId()
}

// BestPlayResult returns the highest-scoring play of a score file, if any.
func BestPlayResult(db DBExecutor, scoreFileID int64) (*PlayResult, error) {
	var pr PlayResult
	err := db.QueryRow(
		`SELECT id, score_file_id, score_point, accuracy, achievement_rate, played_at
		 FROM play_results WHERE score_file_id = ? ORDER BY score_point DESC LIMIT 1`,
		scoreFileID,
	).Scan(&pr.ID, &pr.ScoreFileID, &pr.ScorePoint, &pr.Accuracy, &pr.AchievementRate, &pr.PlayedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pr, nil
}
