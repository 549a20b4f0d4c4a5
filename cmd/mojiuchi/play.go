package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mojiuchi/mojiuchi/pkg/activity"
	"github.com/mojiuchi/mojiuchi/pkg/score"
	"github.com/mojiuchi/mojiuchi/pkg/seconds"
	"github.com/mojiuchi/mojiuchi/pkg/store"
)

// scriptStep is one line of a keystroke script: either "wait <seconds>" or
// "type <text>", the shell-side stand-in for a real-time keyboard/clock
// event pump.
type scriptStep struct {
	isWait bool
	wait   float64
	typed  string
}

func parseScript(r *bufio.Scanner) ([]scriptStep, error) {
	var steps []scriptStep
	lineNum := 0
	for r.Scan() {
		lineNum++
		line := strings.TrimSpace(r.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(line, " ", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: expected \"wait <seconds>\" or \"type <text>\", got %q", lineNum, line)
		}
		switch strings.ToLower(fields[0]) {
		case "wait":
			secs, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid wait duration: %w", lineNum, err)
			}
			steps = append(steps, scriptStep{isWait: true, wait: secs})
		case "type":
			steps = append(steps, scriptStep{typed: fields[1]})
		default:
			return nil, fmt.Errorf("line %d: unknown instruction %q", lineNum, fields[0])
		}
	}
	return steps, r.Err()
}

func eventName(kind activity.EventKind) string {
	switch kind {
	case activity.EventPlayBGM:
		return "PlayBgm"
	case activity.EventUpdateSentence:
		return "UpdateSentence"
	case activity.EventMissedSentence:
		return "MissedSentence"
	case activity.EventCompletedSentence:
		return "CompletedSentence"
	case activity.EventDidPerfectSection:
		return "DidPerfectSection"
	case activity.EventTyped:
		return "Typed"
	case activity.EventEndOfScore:
		return "EndOfScore"
	default:
		return "Unknown"
	}
}

func printEvents(events []activity.Event) {
	for _, e := range events {
		switch e.Kind {
		case activity.EventUpdateSentence:
			if e.Sentence != nil {
				fmt.Printf("%s: %s\n", eventName(e.Kind), e.Sentence.Origin())
			} else {
				fmt.Printf("%s: (none)\n", eventName(e.Kind))
			}
		case activity.EventTyped:
			fmt.Printf("%s: %d\n", eventName(e.Kind), e.TypeOutcome)
		case activity.EventPlayBGM:
			fmt.Printf("%s: %s\n", eventName(e.Kind), e.BGMPath)
		default:
			fmt.Println(eventName(e.Kind))
		}
	}
}

func runPlay(ctx context.Context, args []string) error {
	fs := newFlagSet("play")
	keysPath := fs.String("keys", "", "path to a keystroke script")
	dbPath := fs.String("db", "mojiuchi.db", "path to the sqlite database")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: mojiuchi play <score.tsc> -keys <script.txt>")
	}
	scorePath := fs.Arg(0)

	f, err := os.Open(scorePath)
	if err != nil {
		return fmt.Errorf("open score sheet: %w", err)
	}
	defer f.Close()

	sm, err := score.Load(f, score.LoadConfig{})
	if err != nil {
		return fmt.Errorf("load score sheet: %w", err)
	}

	engine, err := activity.New(sm, activity.DefaultConfig())
	if err != nil {
		return fmt.Errorf("start activity: %w", err)
	}

	conn, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	scoreFileID, err := store.CreateOrGetScoreFile(conn, scorePath, sm.Metadata)
	if err != nil {
		return fmt.Errorf("register score file: %w", err)
	}

	var steps []scriptStep
	if *keysPath != "" {
		sf, err := os.Open(*keysPath)
		if err != nil {
			return fmt.Errorf("open keystroke script: %w", err)
		}
		defer sf.Close()
		steps, err = parseScript(bufio.NewScanner(sf))
		if err != nil {
			return fmt.Errorf("parse keystroke script: %w", err)
		}
	}

	for _, step := range steps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		var events []activity.Event
		if step.isWait {
			events = engine.ElapseTime(seconds.New(step.wait))
		} else {
			events = engine.KeyPress([]rune(step.typed))
		}
		printEvents(events)
	}

	final := engine.GameScore()
	fmt.Printf("Final score: %d (accuracy %.2f%%, achievement %.2f%%)\n",
		final.ScorePoint, final.Accuracy*100, final.AchievementRate*100)

	if _, err := store.RecordPlayResult(conn, scoreFileID, final.ScorePoint, final.Accuracy, final.AchievementRate); err != nil {
		return fmt.Errorf("record play result: %w", err)
	}
	return nil
}
