package orm

import (
	"encoding/binary"

	"github.com/blocktrust/gavel"
)

// Sequence maintains a counter in the database. The counter value lives
// outside any bucket keyspace, under a "_s." prefixed key, so buckets and
// their sequences never collide.
type Sequence struct {
	id []byte
}

// NewSequence returns a named sequence scoped to the given bucket.
func NewSequence(bucket, name string) Sequence {
	id := "_s." + bucket + ":" + name
	return Sequence{
		id: []byte(id),
	}
}

// NextVal increments the sequence and returns its state as 8 bytes.
func (s Sequence) NextVal(db gavel.KVStore) ([]byte, error) {
	bz, _, err := s.increment(db)
	return bz, err
}

// NextInt increments the sequence and returns its state as int64.
func (s Sequence) NextInt(db gavel.KVStore) (int64, error) {
	_, val, err := s.increment(db)
	return val, err
}

// Latest returns the current value of the sequence without modifying it.
// A sequence that was never incremented reports zero values.
func (s Sequence) Latest(db gavel.ReadOnlyKVStore) ([]byte, int64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return nil, 0, err
	}
	if raw == nil {
		return nil, 0, nil
	}
	return raw, int64(binary.BigEndian.Uint64(raw)), nil
}

func (s Sequence) increment(db gavel.KVStore) ([]byte, int64, error) {
	raw, val, err := s.Latest(db)
	if err != nil {
		return nil, 0, err
	}
	val++
	if raw == nil {
		raw = make([]byte, 8)
	}
	binary.BigEndian.PutUint64(raw, uint64(val))
	if err := db.Set(s.id, raw); err != nil {
		return nil, 0, err
	}
	return raw, val, nil
}
