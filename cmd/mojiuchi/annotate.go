package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mojiuchi/mojiuchi/pkg/dictionary"
	"github.com/mojiuchi/mojiuchi/pkg/ingest"
	"github.com/mojiuchi/mojiuchi/pkg/lyrics"
	"github.com/mojiuchi/mojiuchi/pkg/score"
	"github.com/mojiuchi/mojiuchi/pkg/store"
)

func runAnnotate(ctx context.Context, args []string) error {
	fs := newFlagSet("annotate")
	dbPath := fs.String("db", "mojiuchi.db", "path to the sqlite database")
	dictPath := fs.String("dict", "", "optional JMdict-simplified JSON file to prefer over tokenizer guesses")
	fetchURL := fs.String("fetch", "", "optional URL to fetch fresh lyric text from instead of the score sheet's un-annotated lines")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: mojiuchi annotate <score.tsc> [-fetch url] [-dict jmdict.json] [-db path]")
	}
	scorePath := fs.Arg(0)

	conn, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	var dictImporter *dictionary.Importer
	if *dictPath != "" {
		entries, err := dictionary.LoadJMdictSimplified(*dictPath)
		if err != nil {
			return fmt.Errorf("load dictionary: %w", err)
		}
		dictImporter = dictionary.NewImporter(conn, entries)
	}

	analyzer, err := lyrics.NewAnalyzer()
	if err != nil {
		return fmt.Errorf("start tokenizer: %w", err)
	}

	scoreFileID, err := store.CreateOrGetScoreFile(conn, scorePath, nil)
	if err != nil {
		return fmt.Errorf("register score file: %w", err)
	}

	ig := ingest.NewIngester(conn, dictImporter, analyzer)

	if *fetchURL != "" {
		return annotateFromFetch(ctx, ig, scoreFileID, *fetchURL, scorePath)
	}
	return annotateExistingSheet(ctx, ig, scoreFileID, scorePath)
}

// annotateFromFetch drafts a brand new score-sheet skeleton from freshly
// fetched lyric text, alternating each line with its suggested yomigana.
func annotateFromFetch(ctx context.Context, ig *ingest.Ingester, scoreFileID int64, url, scorePath string) error {
	article, err := lyrics.FetchLyrics(ctx, url)
	if err != nil {
		return fmt.Errorf("fetch lyrics: %w", err)
	}

	var lines []ingest.LyricLine
	for i, raw := range strings.Split(article.Text, "\n") {
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		lines = append(lines, ingest.LyricLine{Index: i, Text: text})
	}

	annotated, err := ig.Annotate(ctx, scoreFileID, lines)
	if err != nil {
		return fmt.Errorf("annotate fetched lyrics: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# drafted from %s\n", url)
	fmt.Fprintf(&b, ":title %s\n", article.Title)
	b.WriteString(":song_data song.ogg\n")
	b.WriteString("[start]\n")
	b.WriteString("*1.0\n")
	for _, a := range annotated {
		b.WriteString(a.Text + "\n")
		b.WriteString(":" + a.Yomigana + "\n")
		if kanjiRunComment := formatKanjiRuns(a.KanjiRuns); kanjiRunComment != "" {
			b.WriteString(kanjiRunComment + "\n")
		}
	}
	b.WriteString("[end]\n")

	outPath := draftPath(scorePath)
	if err := os.WriteFile(outPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write draft: %w", err)
	}
	fmt.Printf("Drafted %d lines to %s\n", len(annotated), outPath)
	return nil
}

// annotateExistingSheet finds lyric lines in an existing score sheet that
// have no following yomigana line, drafts readings for them, and writes a
// copy of the sheet with those readings spliced in.
func annotateExistingSheet(ctx context.Context, ig *ingest.Ingester, scoreFileID int64, scorePath string) error {
	rawLines, err := readLines(scorePath)
	if err != nil {
		return fmt.Errorf("read score sheet: %w", err)
	}

	f, err := os.Open(scorePath)
	if err != nil {
		return fmt.Errorf("open score sheet: %w", err)
	}
	defer f.Close()

	tokens, err := score.Lex(f, score.LoadConfig{IgnoreUnsupportedProperty: true})
	if err != nil {
		return fmt.Errorf("lex score sheet: %w", err)
	}

	var pending []ingest.LyricLine
	for i, tok := range tokens {
		if tok.Kind != score.TokenLyrics {
			continue
		}
		if i+1 < len(tokens) && tokens[i+1].Kind == score.TokenYomigana {
			continue
		}
		pending = append(pending, ingest.LyricLine{Index: tok.LineNum, Text: tok.Lyrics})
	}

	if len(pending) == 0 {
		fmt.Println("No un-annotated lyric lines found.")
		return nil
	}

	annotated, err := ig.Annotate(ctx, scoreFileID, pending)
	if err != nil {
		return fmt.Errorf("annotate score sheet: %w", err)
	}

	insertions := make(map[int]string, len(annotated))
	for _, a := range annotated {
		inserted := ":" + a.Yomigana
		if kanjiRunComment := formatKanjiRuns(a.KanjiRuns); kanjiRunComment != "" {
			inserted += "\n" + kanjiRunComment
		}
		insertions[a.Index] = inserted
	}

	var out strings.Builder
	for i, line := range rawLines {
		lineNum := i + 1
		out.WriteString(line)
		out.WriteString("\n")
		if yomigana, ok := insertions[lineNum]; ok {
			out.WriteString(yomigana)
			out.WriteString("\n")
		}
	}

	outPath := draftPath(scorePath)
	if err := os.WriteFile(outPath, []byte(out.String()), 0644); err != nil {
		return fmt.Errorf("write annotated sheet: %w", err)
	}
	fmt.Printf("Drafted readings for %d lines to %s\n", len(annotated), outPath)
	return nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

// formatKanjiRuns renders a drafted line's kanji-run breakdown as a
// score-sheet comment (e.g. "# 歩=ある 漢字=かんじ"), so a human reviewing
// the draft can see which reading was suggested for which kanji stem
// without having to re-derive it from the whole-line yomigana. Returns ""
// for a line with no kanji, so a comment line isn't inserted for one.
func formatKanjiRuns(runs []lyrics.KanjiRun) string {
	if len(runs) == 0 {
		return ""
	}
	parts := make([]string, len(runs))
	for i, r := range runs {
		parts[i] = r.Surface + "=" + r.Reading
	}
	return "# " + strings.Join(parts, " ")
}

func draftPath(scorePath string) string {
	ext := filepath.Ext(scorePath)
	base := strings.TrimSuffix(scorePath, ext)
	return base + ".annotated" + ext
}
