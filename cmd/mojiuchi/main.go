// Command mojiuchi is a replaceable CLI shell over the typing-game domain
// core: it loads score sheets, drives a play session from a keystroke
// script, and maintains the furigana dictionary used to draft new score
// sheets. It never reaches into rendering, audio, or input-event code —
// those belong to a real front end built against pkg/activity directly.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mojiuchi/mojiuchi/pkg/store"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "play":
		err = runPlay(ctx, args)
	case "annotate":
		err = runAnnotate(ctx, args)
	case "import-dict":
		err = runImportDict(ctx, args)
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("mojiuchi %s: %v", cmd, err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `mojiuchi <command> [flags]

Commands:
  play <score.tsc> -keys <script.txt> [-db path]
      Load a score sheet, drive it through a keystroke script, print the
      event stream, and record the final score.
  annotate <score.tsc> [-fetch url] [-dict jmdict.json] [-db path]
      Draft furigana for un-annotated lyric lines.
  import-dict <jmdict.json> [-db path]
      Import JMdict-simplified readings into the database.`)
}

func openStore(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := store.InitDB(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	return conn, nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return fs
}
