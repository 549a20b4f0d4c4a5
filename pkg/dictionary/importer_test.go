package dictionary

import (
	"database/sql"
	"os"
	"testing"

	"github.com/mojiuchi/mojiuchi/pkg/store"
	_ "github.com/mattn/go-sqlite3"
)

const testDict = `
{
  "words": [
    {
      "id": "1",
      "kanji": [{"text": "犬", "common": true}],
      "kana": [{"text": "いぬ", "common": true}]
    },
    {
      "id": "2",
      "kanji": [{"text": "走る", "common": true}],
      "kana": [{"text": "はしる", "common": true}]
    },
    {
      "id": "3",
      "kanji": [{"text": "猫", "common": true}],
      "kana": [{"text": "ねこ", "common": true}]
    },
    {
      "id": "4",
      "kanji": [],
      "kana": [{"text": "テスト", "common": true}]
    }
  ]
}
`

func writeTestDict(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "jmdict_test_*.json")
	if err != nil {
		t.Fatalf("tempfile: %v", err)
	}
	if _, err := f.Write([]byte(testDict)); err != nil {
		t.Fatalf("write: %v", err)
	}
	f.Close()
	return f.Name()
}

func TestImportReadings(t *testing.T) {
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer conn.Close()
	if err := store.InitDB(conn); err != nil {
		t.Fatalf("init db: %v", err)
	}

	entries, err := LoadJMdictSimplified(writeTestDict(t))
	if err != nil {
		t.Fatalf("load dict: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	importer := NewImporter(conn, entries)
	count, err := importer.ImportReadings()
	if err != nil {
		t.Fatalf("import readings: %v", err)
	}
	// 犬, 走る, 猫 each carry one kanji headword with one reading.
	// テスト has no kanji spelling, so it contributes nothing.
	if count != 3 {
		t.Fatalf("expected 3 readings written, got %d", count)
	}

	readings, err := store.LookupReadings(conn, "犬")
	if err != nil {
		t.Fatalf("lookup readings: %v", err)
	}
	if len(readings) != 1 || readings[0].Reading != "いぬ" {
		t.Fatalf("expected reading いぬ for 犬, got %+v", readings)
	}
}

func TestImporterLookupPrefersCommonReading(t *testing.T) {
	entries := []JMdictEntry{
		{Id: "1", Kanji: []JMdictElement{{Text: "曲"}}, Kana: []JMdictElement{{Text: "きょく"}}},
		{Id: "2", Kanji: []JMdictElement{{Text: "曲"}}, Kana: []JMdictElement{{Text: "まが", Common: true}}},
	}
	importer := NewImporter(nil, entries)
	readings := importer.Lookup("曲")
	if len(readings) != 2 || readings[0] != "まが" {
		t.Fatalf("expected common reading first, got %v", readings)
	}
}

func TestToHiragana(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"ア", "あ"},
		{"イ", "い"},
		{"カ", "か"},
		{"ガ", "が"},
		{"パ", "ぱ"},
		{"ン", "ん"},
		{"ー", "ー"},
		{"abc", "abc"},
		{"あいう", "あいう"},
	}
	for _, tt := range tests {
		if got := ToHiragana(tt.in); got != tt.out {
			t.Errorf("ToHiragana(%q) = %q; want %q", tt.in, got, tt.out)
		}
	}
}
