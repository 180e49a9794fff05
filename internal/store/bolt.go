// Package store persists classified rows and authored rules per engagement
// in a single bolt file. Each engagement gets its own top-level bucket, so
// rules saved for one audit never leak into another's runs.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"

	"github.com/ledgermap-dev/ledgermap/internal/model"
	"github.com/ledgermap-dev/ledgermap/internal/rules"
)

const (
	rowsKey  = "rows"
	rulesKey = "rules"
)

// DB wraps the engagement database file.
type DB struct {
	db *bolt.DB
}

// Open opens or creates the database file.
func Open(path string) (*DB, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	return &DB{db: db}, nil
}

// Close releases the file lock.
func (d *DB) Close() error {
	return d.db.Close()
}

// SaveRows writes the classified set for an engagement. The write is
// transactional: on error the file keeps its previous contents and the
// caller's in-memory rows are untouched.
func (d *DB) SaveRows(engagement string, rows []model.ClassifiedRow) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encoding rows: %w", err)
	}
	return d.put(engagement, rowsKey, data)
}

// LoadRows reads the classified set for an engagement. A missing engagement
// or missing rows yields an empty set, not an error.
func (d *DB) LoadRows(engagement string) ([]model.ClassifiedRow, error) {
	data, err := d.get(engagement, rowsKey)
	if err != nil || data == nil {
		return nil, err
	}
	var rows []model.ClassifiedRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decoding rows for %s: %w", engagement, err)
	}
	return rows, nil
}

// SaveRules writes the authored-rule snapshot for an engagement.
func (d *DB) SaveRules(engagement string, snap rules.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return d.put(engagement, rulesKey, data)
}

// LoadRules reads the authored-rule snapshot for an engagement. ok is false
// when nothing was ever saved.
func (d *DB) LoadRules(engagement string) (rules.Snapshot, bool, error) {
	data, err := d.get(engagement, rulesKey)
	if err != nil || data == nil {
		return rules.Snapshot{}, false, err
	}
	var snap rules.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return rules.Snapshot{}, false, fmt.Errorf("decoding rules for %s: %w", engagement, err)
	}
	return snap, true, nil
}

// Engagements lists every engagement with saved state, sorted by bucket
// order.
func (d *DB) Engagements() ([]string, error) {
	var names []string
	err := d.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			names = append(names, string(name))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("listing engagements: %w", err)
	}
	return names, nil
}

// Clear removes all saved state for an engagement.
func (d *DB) Clear(engagement string) error {
	err := d.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(engagement)) == nil {
			return nil
		}
		return tx.DeleteBucket([]byte(engagement))
	})
	if err != nil {
		return fmt.Errorf("clearing engagement %s: %w", engagement, err)
	}
	return nil
}

func (d *DB) put(engagement, key string, data []byte) error {
	if engagement == "" {
		return fmt.Errorf("empty engagement id")
	}
	err := d.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(engagement))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("writing %s for %s: %w", key, engagement, err)
	}
	return nil
}

func (d *DB) get(engagement, key string) ([]byte, error) {
	var data []byte
	err := d.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(engagement))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading %s for %s: %w", key, engagement, err)
	}
	return data, nil
}
