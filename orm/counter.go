package orm

import (
	"github.com/gogo/protobuf/proto"

	"github.com/blocktrust/gavel/errors"
)

// Counter is a simple wrapper around an int64, mainly used to test bucket
// functionality without pulling in application models.
type Counter struct {
	Count int64 `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
}

type counterWire Counter

func (m *counterWire) Reset()         { *m = counterWire{} }
func (m *counterWire) String() string { return proto.CompactTextString(m) }
func (*counterWire) ProtoMessage()    {}

var _ CloneableData = (*Counter)(nil)

// Marshal serializes the counter.
func (m *Counter) Marshal() ([]byte, error) {
	return proto.Marshal((*counterWire)(m))
}

// Unmarshal parses a stored counter.
func (m *Counter) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*counterWire)(m))
}

// Validate requires the count to be non-negative.
func (m *Counter) Validate() error {
	if m.Count < 0 {
		return errors.Wrap(errors.ErrState, "count cannot be negative")
	}
	return nil
}

// Copy produces an independent copy.
func (m *Counter) Copy() CloneableData {
	return &Counter{Count: m.Count}
}

// NewCounter wraps a count value in an object with no key.
func NewCounter(count int64) Object {
	return NewSimpleObj(nil, &Counter{Count: count})
}
