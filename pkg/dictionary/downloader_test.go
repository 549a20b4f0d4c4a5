package dictionary

import (
	"context"
	"os"
	"testing"
)

// TestEnsureDictionaryLeavesAnAlreadyImportedFileAlone checks that
// EnsureDictionary short-circuits once a JMdict-simplified dump already
// sits at the configured path, the common case for a kanji_reading import
// run after the first one: no GitHub lookup, no re-download.
func TestEnsureDictionaryLeavesAnAlreadyImportedFileAlone(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "jmdict-eng-common-*.json")
	if err != nil {
		t.Fatalf("tempfile: %v", err)
	}
	defer os.Remove(tmpFile.Name())
	tmpFile.Close()

	if err := EnsureDictionary(context.Background(), tmpFile.Name()); err != nil {
		t.Fatalf("EnsureDictionary failed with an already-cached dictionary file: %v", err)
	}
}
