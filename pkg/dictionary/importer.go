package dictionary

import (
	"database/sql"
	"log"
	"sort"

	"github.com/mojiuchi/mojiuchi/pkg/store"
)

// Importer indexes a loaded JMdict-simplified dictionary by kanji headword
// and writes each headword's readings into the store as KanjiReading rows.
type Importer struct {
	conn  *sql.DB
	index map[string][]JMdictEntry
}

// NewImporter builds an importer over entries, indexed by every kanji
// spelling each entry carries.
func NewImporter(conn *sql.DB, entries []JMdictEntry) *Importer {
	idx := make(map[string][]JMdictEntry)
	for _, e := range entries {
		for _, k := range e.Kanji {
			idx[k.Text] = append(idx[k.Text], e)
		}
	}
	return &Importer{conn: conn, index: idx}
}

// ImportReadings writes every indexed kanji headword's readings to the
// store, returning how many distinct (kanji, reading) pairs were written.
func (im *Importer) ImportReadings() (int, error) {
	headwords := make([]string, 0, len(im.index))
	for kanji := range im.index {
		headwords = append(headwords, kanji)
	}
	sort.Strings(headwords)

	written := 0
	for _, kanji := range headwords {
		for _, reading := range im.readingsFor(kanji) {
			if _, err := store.CreateOrGetKanjiReading(im.conn, kanji, reading.text, reading.common); err != nil {
				log.Printf("failed to store reading for %s: %v", kanji, err)
				continue
			}
			written++
		}
	}
	return written, nil
}

type reading struct {
	text   string
	common bool
}

// readingsFor collects the distinct hiragana readings across every entry
// sharing a kanji headword.
func (im *Importer) readingsFor(kanji string) []reading {
	seen := make(map[string]bool)
	var out []reading
	for _, entry := range im.index[kanji] {
		for _, k := range entry.Kana {
			r := ToHiragana(k.Text)
			if seen[r] {
				continue
			}
			seen[r] = true
			out = append(out, reading{text: r, common: k.Common})
		}
	}
	return out
}

// Lookup returns the known readings for a kanji headword, most common
// first, consulting the dictionary index directly rather than the store
// (used by the annotation pipeline before anything has been persisted).
func (im *Importer) Lookup(kanji string) []string {
	readings := im.readingsFor(kanji)
	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].common && !readings[j].common
	})
	out := make([]string, len(readings))
	for i, r := range readings {
		out[i] = r.text
	}
	return out
}
