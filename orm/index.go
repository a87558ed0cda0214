package orm

import (
	"bytes"

	"github.com/blocktrust/gavel"
	"github.com/blocktrust/gavel/errors"
)

var indexPrefix = []byte("_i.")

// Indexer calculates the secondary index key for a given object. Returning
// a nil key (with nil error) means the object is not part of this index.
type Indexer func(Object) ([]byte, error)

// Index represents a secondary index on some data. It is indexed by an
// arbitrary key returned by Indexer. The value is one primary key (unique),
// or a set of primary keys (!unique).
type Index struct {
	name   string
	id     []byte
	unique bool
	index  Indexer
}

// NewIndex constructs an index with the given name and indexer function.
// Indexes are stored under "_i.<name>:<index key>", outside any bucket
// keyspace.
func NewIndex(name string, indexer Indexer, unique bool) Index {
	id := append(append([]byte(nil), indexPrefix...), []byte(name+":")...)
	return Index{
		name:   name,
		id:     id,
		unique: unique,
		index:  indexer,
	}
}

// IndexKey is the full key where the references for this index value are
// stored.
func (i Index) IndexKey(key []byte) []byte {
	out := make([]byte, len(i.id)+len(key))
	copy(out, i.id)
	copy(out[len(i.id):], key)
	return out
}

// Update handles updating the index when an object is saved or deleted.
// prev == nil means insert, save == nil means delete, both non-nil means
// the object may have moved to a new index value.
func (i Index) Update(db gavel.KVStore, prev Object, save Object) error {
	type s struct{ a, b bool }
	sw := s{prev == nil, save == nil}
	switch sw {
	case s{true, true}:
		return errors.Wrap(errors.ErrHuman, "update requires at least one object")
	case s{true, false}:
		key, err := i.index(save)
		if err != nil {
			return err
		}
		return i.insert(db, key, save.Key())
	case s{false, true}:
		key, err := i.index(prev)
		if err != nil {
			return err
		}
		return i.remove(db, key, prev.Key())
	case s{false, false}:
		return i.move(db, prev, save)
	}
	return errors.Wrap(errors.ErrHuman, "you have violated the rules of boolean logic")
}

// Keys returns all primary keys that have the given secondary index value.
func (i Index) Keys(db gavel.ReadOnlyKVStore, index []byte) ([][]byte, error) {
	refs, err := i.loadRefs(db, index)
	if err != nil || refs == nil {
		return nil, err
	}
	return refs.Refs, nil
}

// GetLike calculates the index value for the given pattern object and
// returns all primary keys stored under that value.
func (i Index) GetLike(db gavel.ReadOnlyKVStore, pattern Object) ([][]byte, error) {
	index, err := i.index(pattern)
	if err != nil {
		return nil, err
	}
	return i.Keys(db, index)
}

func (i Index) move(db gavel.KVStore, prev Object, save Object) error {
	oldKey, err := i.index(prev)
	if err != nil {
		return err
	}
	newKey, err := i.index(save)
	if err != nil {
		return err
	}
	if bytes.Equal(oldKey, newKey) {
		return nil
	}
	if err := i.remove(db, oldKey, prev.Key()); err != nil {
		return err
	}
	return i.insert(db, newKey, save.Key())
}

func (i Index) insert(db gavel.KVStore, index []byte, pk []byte) error {
	// Objects without an index value are simply not indexed.
	if index == nil {
		return nil
	}
	refs, err := i.loadRefs(db, index)
	if err != nil {
		return err
	}
	if refs == nil {
		refs = new(RefSet)
	}
	if i.unique && len(refs.Refs) > 0 {
		return errors.Wrapf(errors.ErrDuplicate, "index %s", i.name)
	}
	if err := refs.Add(pk); err != nil {
		return err
	}
	return i.save(db, index, refs)
}

func (i Index) remove(db gavel.KVStore, index []byte, pk []byte) error {
	if index == nil {
		return nil
	}
	refs, err := i.loadRefs(db, index)
	if err != nil {
		return err
	}
	if refs == nil {
		return errors.Wrapf(errors.ErrNotFound, "index %s", i.name)
	}
	if err := refs.Remove(pk); err != nil {
		return err
	}
	return i.save(db, index, refs)
}

func (i Index) loadRefs(db gavel.ReadOnlyKVStore, index []byte) (*RefSet, error) {
	raw, err := db.Get(i.IndexKey(index))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	refs := new(RefSet)
	if err := refs.Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "parsing index %s: %s", i.name, err)
	}
	return refs, nil
}

func (i Index) save(db gavel.KVStore, index []byte, refs *RefSet) error {
	key := i.IndexKey(index)
	if len(refs.Refs) == 0 {
		return db.Delete(key)
	}
	raw, err := refs.Marshal()
	if err != nil {
		return err
	}
	return db.Set(key, raw)
}
