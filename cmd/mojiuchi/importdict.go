package main

import (
	"context"
	"fmt"

	"github.com/mojiuchi/mojiuchi/pkg/dictionary"
)

func runImportDict(ctx context.Context, args []string) error {
	fs := newFlagSet("import-dict")
	dbPath := fs.String("db", "mojiuchi.db", "path to the sqlite database")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: mojiuchi import-dict <jmdict.json> [-db path]")
	}
	dictPath := fs.Arg(0)

	if err := dictionary.EnsureDictionary(ctx, dictPath); err != nil {
		return fmt.Errorf("ensure dictionary: %w", err)
	}

	fmt.Printf("Loading dictionary from %s...\n", dictPath)
	entries, err := dictionary.LoadJMdictSimplified(dictPath)
	if err != nil {
		return fmt.Errorf("load dictionary: %w", err)
	}
	fmt.Printf("Loaded %d entries.\n", len(entries))

	conn, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	importer := dictionary.NewImporter(conn, entries)
	count, err := importer.ImportReadings()
	if err != nil {
		return fmt.Errorf("import readings: %w", err)
	}
	fmt.Printf("Imported %d readings.\n", count)
	return nil
}
