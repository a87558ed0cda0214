package store

import (
	"bytes"

	"github.com/google/btree"

	"github.com/blocktrust/gavel/errors"
)

// SliceIterator wraps an Iterator over a slice of models.
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator creates a new Iterator over this slice.
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{
		data: data,
	}
}

// Next returns the next key-value pair, or ErrIteratorDone when exhausted.
func (s *SliceIterator) Next() ([]byte, []byte, error) {
	if s.idx >= len(s.data) {
		return nil, nil, errors.ErrIteratorDone
	}
	m := s.data[s.idx]
	s.idx++
	return m.Key, m.Value, nil
}

// Release releases the Iterator.
func (s *SliceIterator) Release() {
	s.data = nil
	s.idx = 0
}

// cacheIterator merges a snapshot of cached btree items with the backing
// store iterator. Cached writes shadow the parent data and cached deletes
// hide it.
type cacheIterator struct {
	items   []btree.Item
	parent  Iterator
	reverse bool

	parentKey   []byte
	parentValue []byte
	parentValid bool
	parentDone  bool
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(items []btree.Item, parent Iterator, reverse bool) *cacheIterator {
	return &cacheIterator{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
}

func (c *cacheIterator) Next() ([]byte, []byte, error) {
	for {
		if !c.parentValid && !c.parentDone {
			key, value, err := c.parent.Next()
			switch {
			case err == nil:
				c.parentKey, c.parentValue = key, value
				c.parentValid = true
			case errors.ErrIteratorDone.Is(err):
				c.parentDone = true
			default:
				return nil, nil, err
			}
		}

		if len(c.items) == 0 && !c.parentValid {
			return nil, nil, errors.ErrIteratorDone
		}

		// Parent only.
		if len(c.items) == 0 {
			c.parentValid = false
			return c.parentKey, c.parentValue, nil
		}

		item := c.items[0]
		takeCached := true
		if c.parentValid {
			cmp := bytes.Compare(item.(keyer).Key(), c.parentKey)
			if c.reverse {
				cmp = -cmp
			}
			switch {
			case cmp > 0:
				takeCached = false
			case cmp == 0:
				// Cache shadows the parent entry.
				c.parentValid = false
			}
		}

		if !takeCached {
			c.parentValid = false
			return c.parentKey, c.parentValue, nil
		}

		c.items = c.items[1:]
		switch t := item.(type) {
		case setItem:
			return t.key, t.value, nil
		case deletedItem:
			// Hidden entry, move on.
		default:
			return nil, nil, errors.Wrapf(errors.ErrDatabase, "unknown item in btree: %#v", item)
		}
	}
}

func (c *cacheIterator) Release() {
	c.parent.Release()
	c.items = nil
}
