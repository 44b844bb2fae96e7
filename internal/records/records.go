// Package records loads named configuration tables from an extracted game
// data dump. Tables are read once, whole-file, and never mutated afterwards.
package records

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
)

// ErrNotFound is returned when a table has no record for a key.
var ErrNotFound = errors.New("record not found")

// Table is one configuration table: string keys to raw JSON records, in file order.
type Table struct {
	Name string
	keys []string
	rows map[string]gjson.Result
}

// Parse builds a table from JSON bytes. Object dumps are keyed by their
// member names. Array dumps are keyed by each element's keyField; the first
// element wins when keys repeat.
func Parse(name string, data []byte, keyField string) (*Table, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("records: %s: invalid JSON", name)
	}
	root := gjson.ParseBytes(data)
	t := &Table{Name: name, rows: make(map[string]gjson.Result)}

	switch {
	case root.IsObject():
		root.ForEach(func(key, value gjson.Result) bool {
			t.add(key.String(), value)
			return true
		})
	case root.IsArray():
		if keyField == "" {
			return nil, fmt.Errorf("records: %s: array dump needs a key field", name)
		}
		var err error
		root.ForEach(func(_, value gjson.Result) bool {
			key := value.Get(keyField)
			if !key.Exists() {
				err = fmt.Errorf("records: %s: element without %s", name, keyField)
				return false
			}
			if _, dup := t.rows[key.String()]; !dup {
				t.add(key.String(), value)
			}
			return true
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("records: %s: expected an object or array", name)
	}
	return t, nil
}

func (t *Table) add(key string, value gjson.Result) {
	if _, ok := t.rows[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.rows[key] = value
}

// Get returns the record stored under key.
func (t *Table) Get(key string) (gjson.Result, error) {
	rec, ok := t.rows[key]
	if !ok {
		return gjson.Result{}, fmt.Errorf("records: %s[%s]: %w", t.Name, key, ErrNotFound)
	}
	return rec, nil
}

// Lookup returns the record stored under an integer id.
func (t *Table) Lookup(id int) (gjson.Result, error) {
	return t.Get(strconv.Itoa(id))
}

// Has reports whether key is present.
func (t *Table) Has(key string) bool {
	_, ok := t.rows[key]
	return ok
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.keys)
}

// Keys returns the record keys in file order.
func (t *Table) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Each calls fn for every record in file order, stopping at the first error.
func (t *Table) Each(fn func(key string, rec gjson.Result) error) error {
	for _, k := range t.keys {
		if err := fn(k, t.rows[k]); err != nil {
			return err
		}
	}
	return nil
}

// Store loads tables by name from a dump directory, caching each table.
type Store struct {
	dir string

	mu     sync.Mutex
	tables map[string]*Table
}

// NewStore returns a store reading "<dir>/<name>.json".
func NewStore(dir string) *Store {
	return &Store{dir: dir, tables: make(map[string]*Table)}
}

// Dir returns the dump directory.
func (s *Store) Dir() string {
	return s.dir
}

// Load returns the named table, reading it on first use. keyField keys array
// dumps (see Parse); pass "ID" for most tables.
func (s *Store) Load(name, keyField string) (*Table, error) {
	name = strings.TrimSuffix(name, ".json")

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tables[name]; ok {
		return t, nil
	}

	path := filepath.Join(s.dir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("records: read %s: %w", path, err)
	}
	t, err := Parse(name, data, keyField)
	if err != nil {
		return nil, err
	}
	s.tables[name] = t
	return t, nil
}
