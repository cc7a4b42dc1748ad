package jsonfile

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/imd-care/care-reports/pkg/models/store"
)

// Load reads a record set fixture from path
func Load(path string) (store.RecordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return store.RecordSet{}, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a record set. Unknown fields are rejected so that misspelled
// keys do not silently become empty cells.
func Decode(r io.Reader) (store.RecordSet, error) {
	var set store.RecordSet
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&set); err != nil {
		return store.RecordSet{}, fmt.Errorf("decode fixture: %w", err)
	}
	return set, nil
}
