/*
Package orm provides an easy to use db wrapper.

Break state space into prefixed sections called Buckets.
Each bucket contains only one type of object.
It has a primary index (which may be composite),
and may possess secondary indexes.
It may possess one or more native secondary indexes
(string or int).
*/
package orm

import (
	"github.com/blocktrust/gavel"
	"github.com/blocktrust/gavel/x"
)

// Cloneable will create a new object that can be loaded into.
type Cloneable interface {
	Clone() Object
}

// CloneableData is an intelligent Value that can be embedded in a simple
// object to handle much of the details.
type CloneableData interface {
	x.Validater
	gavel.Persistent
	Copy() CloneableData
}

// Object is what is stored in the bucket. Key is joined with the bucket
// prefix to set the full key. Value is the data stored.
type Object interface {
	x.Validater
	Cloneable

	Key() []byte
	SetKey([]byte)

	Value() CloneableData
}

// Reader defines an interface that allows reading objects from the db.
type Reader interface {
	Get(db gavel.ReadOnlyKVStore, key []byte) (Object, error)
}
