package persistence

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/markusressel/ecthermal/internal/events"
	"github.com/markusressel/ecthermal/internal/ui"
	bolt "go.etcd.io/bbolt"
	"os"
	"path/filepath"
	"time"
)

const (
	BucketEvents = "events"
)

// Persistence is the thermal event journal. It is diagnostics only,
// no thermal state is ever restored from it.
type Persistence interface {
	Init() error

	AppendEvent(event events.Event) error
	LoadEvents(limit int) ([]events.Event, error)
	DeleteEvents() error
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// AppendEvent stores the given event under the next sequence number
func (p persistence) AppendEvent(event events.Event) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketEvents))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		return b.Put(sequenceKey(seq), data)
	})
}

// LoadEvents returns up to limit of the most recent events, oldest first.
// A limit <= 0 returns all events.
func (p persistence) LoadEvents(limit int) ([]events.Event, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var result []events.Event
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketEvents))
		if b == nil {
			return nil
		}

		var corrupt [][]byte
		c := b.Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(result) >= limit {
				break
			}
			var event events.Event
			if err := json.Unmarshal(v, &event); err != nil {
				// if we cannot read the saved data, delete it
				ui.Warning("Unable to unmarshal saved event %d: %v", binary.BigEndian.Uint64(k), err)
				corrupt = append(corrupt, append([]byte{}, k...))
				continue
			}
			result = append(result, event)
		}

		for _, key := range corrupt {
			if err := b.Delete(key); err != nil {
				ui.Error("Unable to delete corrupt event %d: %v", binary.BigEndian.Uint64(key), err)
			}
		}
		return nil
	})

	// reverse to oldest first
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return result, err
}

func (p persistence) DeleteEvents() error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(BucketEvents)) == nil {
			// no event bucket yet
			return nil
		}
		return tx.DeleteBucket([]byte(BucketEvents))
	})
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
