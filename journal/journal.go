// Package journal records machine Events in a bbolt database.
//
// The journal is append-only.  Nothing here restores a store from
// the journal; it's an audit trail of sales, fills, and withdrawals.
package journal

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/Comcast/vend/machine"

	bolt "go.etcd.io/bbolt"
)

// Bucket is the name of the bbolt bucket that holds the entries.
var Bucket = []byte("events")

// NotOpen is returned when the Journal is used before Open.
var NotOpen = errors.New("journal not open")

// Entry is one recorded Event.
type Entry struct {
	Seq   uint64        `json:"seq"`
	At    time.Time     `json:"at"`
	Event machine.Event `json:"event"`
}

// Journal is a bbolt-backed event log.
type Journal struct {
	Debug bool

	// Now is used to timestamp entries.  Defaults to time.Now.
	Now func() time.Time

	filename string
	db       *bolt.DB
}

// NewJournal makes a Journal that will use the given file.  Call
// Open before use.
func NewJournal(filename string) *Journal {
	return &Journal{
		filename: filename,
		Now:      time.Now,
	}
}

func (j *Journal) logf(format string, args ...interface{}) {
	if j.Debug {
		log.Printf("Journal."+format, args...)
	}
}

// Open opens (or creates) the database.
func (j *Journal) Open(ctx context.Context) error {
	opts := &bolt.Options{
		Timeout: time.Second,
	}

	db, err := bolt.Open(j.filename, 0644, opts)
	if err != nil {
		return err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(Bucket)
		return err
	})
	if err != nil {
		db.Close()
		return err
	}
	j.db = db
	j.logf("Open %s", j.filename)
	return nil
}

// Close closes the database.
func (j *Journal) Close(ctx context.Context) error {
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}

func key(seq uint64) []byte {
	bs := make([]byte, 8)
	binary.BigEndian.PutUint64(bs, seq)
	return bs
}

// Emit appends the given Event.
func (j *Journal) Emit(ctx context.Context, ev machine.Event) error {
	if j.db == nil {
		return NotOpen
	}
	return j.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(Bucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		e := &Entry{
			Seq:   seq,
			At:    j.Now().UTC(),
			Event: ev,
		}
		js, err := json.Marshal(e)
		if err != nil {
			return err
		}
		j.logf("Emit %s", js)
		return b.Put(key(seq), js)
	})
}

// Entries returns every entry with a sequence number of at least
// since, in order.
func (j *Journal) Entries(ctx context.Context, since uint64) ([]*Entry, error) {
	if j.db == nil {
		return nil, NotOpen
	}
	acc := make([]*Entry, 0, 32)
	err := j.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(Bucket).Cursor()
		for k, v := c.Seek(key(since)); k != nil; k, v = c.Next() {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			acc = append(acc, &e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	j.logf("Entries since %d found %d", since, len(acc))
	return acc, nil
}

// Summary totals a list of entries.
type Summary struct {
	Sales  map[string]int    `json:"sales"`
	Income uint64            `json:"income"`
	Taken  uint64            `json:"taken"`
	Filled map[string]uint64 `json:"filled"`
}

// Summarize totals the given entries.
func Summarize(es []*Entry) *Summary {
	s := &Summary{
		Sales:  make(map[string]int),
		Filled: make(map[string]uint64),
	}
	for _, e := range es {
		switch e.Event.Kind {
		case machine.EventPurchase:
			s.Sales[e.Event.Recipe]++
			s.Income += e.Event.Money
		case machine.EventTake:
			s.Taken += e.Event.Money
		case machine.EventFill:
			s.Filled[e.Event.Consumable] += e.Event.Amount
		}
	}
	return s
}
