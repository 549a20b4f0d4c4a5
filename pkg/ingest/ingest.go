// Package ingest drives the furigana-annotation pipeline: it walks a score
// sheet's un-annotated lyric lines, tokenizes each one, resolves a
// hiragana reading per token (preferring an imported JMdict reading over
// the tokenizer's own guess), and records the resolved kanji usages while
// checkpointing progress so a long annotation run can resume.
package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/mojiuchi/mojiuchi/pkg/dictionary"
	"github.com/mojiuchi/mojiuchi/pkg/lyrics"
	"github.com/mojiuchi/mojiuchi/pkg/store"
)

// LyricLine is one un-annotated lyric line from a score sheet, in its
// original line order.
type LyricLine struct {
	Index int
	Text  string
}

// AnnotatedLine is a lyric line paired with its drafted hiragana reading.
type AnnotatedLine struct {
	Index     int
	Text      string
	Yomigana  string
	KanjiRuns []lyrics.KanjiRun
}

// Ingester turns LyricLines into AnnotatedLines using concurrent workers
// and batched, checkpointed database writes.
type Ingester struct {
	DB           *sql.DB
	DictImporter *dictionary.Importer
	Analyzer     *lyrics.Analyzer
	BatchSize    int
	Workers      int
	Logger       *log.Logger
	OnProgress   func(current, total int)
}

// NewIngester builds an Ingester. dict may be nil, in which case every
// reading comes from the tokenizer alone.
func NewIngester(conn *sql.DB, dict *dictionary.Importer, analyzer *lyrics.Analyzer) *Ingester {
	return &Ingester{
		DB:           conn,
		DictImporter: dict,
		Analyzer:     analyzer,
		BatchSize:    50,
		Workers:      4,
	}
}

type processedLine struct {
	Index    int
	Text     string
	Yomigana string
	Tokens   []lyrics.Token
	Error    error
}

// Annotate resolves a hiragana reading for every line, resuming from
// scoreFileID's last_annotated_line checkpoint, and returns the annotated
// lines in their original order.
func (ig *Ingester) Annotate(ctx context.Context, scoreFileID int64, lines []LyricLine) ([]AnnotatedLine, error) {
	lastProcessed, err := store.GetScoreFileProgress(ig.DB, scoreFileID)
	if err != nil {
		if ig.Logger != nil {
			ig.Logger.Printf("Warning: failed to retrieve progress: %v", err)
		}
		lastProcessed = -1
	}
	if lastProcessed >= 0 && ig.Logger != nil {
		ig.Logger.Printf("Resuming annotation from line index %d\n", lastProcessed+1)
	}

	total := len(lines)
	startIdx := lastProcessed + 1
	if startIdx >= total {
		return nil, nil
	}

	wp := NewWorkerPool(ig.Workers, ig.Workers*2)
	resultCh := make(chan processedLine, ig.Workers*2)

	bw := NewBatchWriter(ig.DB, ig.BatchSize, 100*time.Millisecond)
	var batchErr error
	var batchErrMu sync.Mutex
	bw.OnError = func(e error) {
		batchErrMu.Lock()
		if batchErr == nil {
			batchErr = e
		}
		batchErrMu.Unlock()
	}
	defer wp.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	wp.Start(ctx)

	var out []AnnotatedLine
	doneCh := make(chan error, 1)

	go func() {
		defer close(doneCh)
		buffer := make(map[int]processedLine)
		nextIdx := startIdx

		for i := 0; i < total-startIdx; i++ {
			select {
			case <-ctx.Done():
				doneCh <- ctx.Err()
				return
			case res := <-resultCh:
				if res.Error != nil {
					doneCh <- res.Error
					return
				}
				buffer[res.Index] = res
				for {
					item, ok := buffer[nextIdx]
					if !ok {
						break
					}
					delete(buffer, nextIdx)

					currentItem := item
					err := bw.Submit(func(ctx context.Context, tx *sql.Tx) error {
						if err := ig.recordUsages(tx, currentItem); err != nil {
							return err
						}
						if err := store.UpdateScoreFileProgress(tx, scoreFileID, currentItem.Index); err != nil {
							return fmt.Errorf("failed to save progress: %w", err)
						}
						return nil
					})
					if err != nil {
						doneCh <- err
						return
					}
					out = append(out, AnnotatedLine{
						Index:     lines[currentItem.Index].Index,
						Text:      currentItem.Text,
						Yomigana:  currentItem.Yomigana,
						KanjiRuns: lyrics.ExtractKanjiRuns(currentItem.Tokens),
					})
					if ig.OnProgress != nil && (nextIdx+1)%ig.BatchSize == 0 {
						ig.OnProgress(nextIdx+1, total)
					}
					nextIdx++
				}
			}
		}
		if ig.OnProgress != nil {
			ig.OnProgress(total, total)
		}
		doneCh <- nil
	}()

Loop:
	for i := startIdx; i < total; i++ {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}
		idx := i
		line := lines[i]
		err := wp.Submit(ctx, func(ctx context.Context) error {
			res := ig.processLine(idx, line)
			select {
			case resultCh <- res:
			case <-ctx.Done():
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	consumerErr := <-doneCh
	if err := bw.Close(); err != nil {
		if consumerErr == nil {
			consumerErr = err
		}
	}
	batchErrMu.Lock()
	if batchErr != nil && consumerErr == nil {
		consumerErr = batchErr
	}
	batchErrMu.Unlock()

	return out, consumerErr
}

// processLine performs the CPU-bound tokenization and reading resolution
// for a single lyric line.
func (ig *Ingester) processLine(index int, line LyricLine) processedLine {
	if ig.Analyzer == nil {
		return processedLine{Index: index, Text: line.Text, Yomigana: dictionary.ToHiragana(line.Text)}
	}
	tokens, err := ig.Analyzer.Analyze(line.Text)
	if err != nil {
		return processedLine{Index: index, Error: fmt.Errorf("tokenize line %d: %w", index, err)}
	}

	var yomigana string
	for _, t := range tokens {
		if !lyrics.HasKanji(t.Surface) {
			yomigana += t.Surface
			continue
		}
		yomigana += ig.resolveReading(t.Surface, t.Reading)
	}
	return processedLine{Index: index, Text: line.Text, Yomigana: yomigana, Tokens: tokens}
}

// resolveReading prefers a dictionary-sourced reading over the tokenizer's
// own guess, since JMdict's common-flagged readings are curated while the
// tokenizer's reading field is a statistical best guess.
func (ig *Ingester) resolveReading(surface, tokenizerReading string) string {
	if ig.DictImporter != nil {
		if readings := ig.DictImporter.Lookup(surface); len(readings) > 0 {
			return readings[0]
		}
	}
	return dictionary.ToHiragana(tokenizerReading)
}

// recordUsages persists a KanjiReading usage row for every kanji-bearing
// token in a processed line.
func (ig *Ingester) recordUsages(tx *sql.Tx, item processedLine) error {
	for _, t := range item.Tokens {
		if !lyrics.HasKanji(t.Surface) {
			continue
		}
		reading := ig.resolveReading(t.Surface, t.Reading)
		if _, err := store.CreateOrGetKanjiReading(tx, t.Surface, reading, false); err != nil {
			return fmt.Errorf("record usage for %s: %w", t.Surface, err)
		}
	}
	return nil
}
