package orm

import (
	"bytes"
	"sort"

	"github.com/gogo/protobuf/proto"

	"github.com/blocktrust/gavel/errors"
)

// RefSet is a sorted set of references to primary keys. Indexes use it to
// map one index value to all keys that share it.
type RefSet struct {
	Refs [][]byte `protobuf:"bytes,1,rep,name=refs,proto3" json:"refs,omitempty"`
}

// proto.Marshal prefers the Marshaler interface over reflection, which
// would loop back into our Marshal. The alias type has no Marshal method,
// so the reflection codec is used.
type refSetWire RefSet

func (m *refSetWire) Reset()         { *m = refSetWire{} }
func (m *refSetWire) String() string { return proto.CompactTextString(m) }
func (*refSetWire) ProtoMessage()    {}

// NewRefSet builds a set from the given references. Duplicates are
// rejected.
func NewRefSet(refs ...[]byte) (*RefSet, error) {
	set := new(RefSet)
	for _, ref := range refs {
		if err := set.Add(ref); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// Marshal serializes the set for storage.
func (m *RefSet) Marshal() ([]byte, error) {
	return proto.Marshal((*refSetWire)(m))
}

// Unmarshal parses a stored set.
func (m *RefSet) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*refSetWire)(m))
}

// Add inserts a reference keeping the set sorted. It returns ErrDuplicate
// if the reference is already present.
func (m *RefSet) Add(ref []byte) error {
	i, found := m.findRef(ref)
	if found {
		return errors.Wrap(errors.ErrDuplicate, "cannot add a ref twice")
	}
	m.Refs = append(m.Refs, nil)
	copy(m.Refs[i+1:], m.Refs[i:])
	m.Refs[i] = ref
	return nil
}

// Remove drops a reference from the set. It returns ErrNotFound if the
// reference is not present.
func (m *RefSet) Remove(ref []byte) error {
	i, found := m.findRef(ref)
	if !found {
		return errors.Wrap(errors.ErrNotFound, "cannot remove a missing ref")
	}
	m.Refs = append(m.Refs[:i], m.Refs[i+1:]...)
	return nil
}

// findRef returns the position where the ref is, or should be inserted to
// keep the set sorted.
func (m *RefSet) findRef(ref []byte) (int, bool) {
	i := sort.Search(len(m.Refs), func(n int) bool {
		return bytes.Compare(m.Refs[n], ref) >= 0
	})
	found := i < len(m.Refs) && bytes.Equal(m.Refs[i], ref)
	return i, found
}
