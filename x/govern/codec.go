package govern

import (
	"github.com/gogo/protobuf/proto"

	"github.com/blocktrust/gavel"
	"github.com/blocktrust/gavel/errors"
)

// Kind is the closed set of governed transaction kinds. It decides which
// payload field is meaningful and which terminal mutator runs on execute.
type Kind int32

const (
	KindInvalid        Kind = 0
	KindIncreaseSupply Kind = 1
	KindDecreaseSupply Kind = 2
	KindChangeReceiver Kind = 3
	KindAddOwner       Kind = 4
	KindRemoveOwner    Kind = 5
)

var kindNames = map[Kind]string{
	KindIncreaseSupply: "increase_supply",
	KindDecreaseSupply: "decrease_supply",
	KindChangeReceiver: "change_receiver",
	KindAddOwner:       "add_owner",
	KindRemoveOwner:    "remove_owner",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// Validate returns an error unless this is one of the known kinds.
func (k Kind) Validate() error {
	if _, ok := kindNames[k]; !ok {
		return errors.Wrapf(errors.ErrInput, "invalid kind %d", k)
	}
	return nil
}

// SupplyChange returns true for kinds that carry an amount payload.
func (k Kind) SupplyChange() bool {
	return k == KindIncreaseSupply || k == KindDecreaseSupply
}

// AddressChange returns true for kinds that carry a target address payload.
func (k Kind) AddressChange() bool {
	return k == KindChangeReceiver || k == KindAddOwner || k == KindRemoveOwner
}

// Transaction is a single governed state change. The index is not stored
// inside the record, it is part of the primary key.
//
// Executed is set once the transaction reached a terminal disposition, by
// execution as well as by removal. Timestamp is refreshed by every
// confirmation, so the time lock counts from the latest approval.
type Transaction struct {
	Kind        Kind                `protobuf:"varint,1,opt,name=kind,proto3" json:"kind,omitempty"`
	Executed    bool                `protobuf:"varint,2,opt,name=executed,proto3" json:"executed,omitempty"`
	Amount      int64               `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Target      gavel.Address       `protobuf:"bytes,4,opt,name=target,proto3" json:"target,omitempty"`
	Timestamp   gavel.UnixTime      `protobuf:"varint,5,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
	LockTime    gavel.UnixDuration  `protobuf:"varint,6,opt,name=lock_time,json=lockTime,proto3" json:"lock_time,omitempty"`
	Description string              `protobuf:"bytes,7,opt,name=description,proto3" json:"description,omitempty"`
}

// ConfirmationList is the ordered sequence of distinct owners that
// confirmed a transaction. The first entry is always the proposer.
type ConfirmationList struct {
	Confirmers []gavel.Address `protobuf:"bytes,1,rep,name=confirmers,proto3" json:"confirmers,omitempty"`
}

// OwnerSet holds the identities authorized to govern. It never shrinks
// below one member.
type OwnerSet struct {
	Owners []gavel.Address `protobuf:"bytes,1,rep,name=owners,proto3" json:"owners,omitempty"`
}

// Config holds the singleton governance configuration. The executor is an
// optional identity that may trigger execution without being an owner.
type Config struct {
	Executor gavel.Address `protobuf:"bytes,1,opt,name=executor,proto3" json:"executor,omitempty"`
}

// ProposeMsg creates a new transaction. The proposer must be an owner and
// counts as the first confirmer.
type ProposeMsg struct {
	Kind        Kind               `protobuf:"varint,1,opt,name=kind,proto3" json:"kind,omitempty"`
	Amount      int64              `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
	Target      gavel.Address      `protobuf:"bytes,3,opt,name=target,proto3" json:"target,omitempty"`
	LockTime    gavel.UnixDuration `protobuf:"varint,4,opt,name=lock_time,json=lockTime,proto3" json:"lock_time,omitempty"`
	Description string             `protobuf:"bytes,5,opt,name=description,proto3" json:"description,omitempty"`
}

// ConfirmMsg adds the caller to the confirmation list of a pending
// transaction.
type ConfirmMsg struct {
	Kind  Kind  `protobuf:"varint,1,opt,name=kind,proto3" json:"kind,omitempty"`
	Index int64 `protobuf:"varint,2,opt,name=index,proto3" json:"index,omitempty"`
}

// RemoveMsg cancels an under confirmed transaction without any ledger
// effect.
type RemoveMsg struct {
	Kind  Kind  `protobuf:"varint,1,opt,name=kind,proto3" json:"kind,omitempty"`
	Index int64 `protobuf:"varint,2,opt,name=index,proto3" json:"index,omitempty"`
}

// ExecuteMsg applies a sufficiently confirmed transaction.
type ExecuteMsg struct {
	Kind  Kind  `protobuf:"varint,1,opt,name=kind,proto3" json:"kind,omitempty"`
	Index int64 `protobuf:"varint,2,opt,name=index,proto3" json:"index,omitempty"`
}

// ChangeExecutorMsg replaces the executor address. This is a direct single
// owner action, not subject to the multi signature lifecycle.
type ChangeExecutorMsg struct {
	Executor gavel.Address `protobuf:"bytes,1,opt,name=executor,proto3" json:"executor,omitempty"`
}

// proto.Marshal prefers the Marshaler interface over reflection, which
// would loop back into our Marshal methods. The alias types have no
// Marshal method, so the reflection codec is used for them.
type (
	transactionWire       Transaction
	confirmationListWire  ConfirmationList
	ownerSetWire          OwnerSet
	configWire            Config
	proposeMsgWire        ProposeMsg
	confirmMsgWire        ConfirmMsg
	removeMsgWire         RemoveMsg
	executeMsgWire        ExecuteMsg
	changeExecutorMsgWire ChangeExecutorMsg
)

func (m *transactionWire) Reset()         { *m = transactionWire{} }
func (m *transactionWire) String() string { return proto.CompactTextString(m) }
func (*transactionWire) ProtoMessage()    {}

func (m *confirmationListWire) Reset()         { *m = confirmationListWire{} }
func (m *confirmationListWire) String() string { return proto.CompactTextString(m) }
func (*confirmationListWire) ProtoMessage()    {}

func (m *ownerSetWire) Reset()         { *m = ownerSetWire{} }
func (m *ownerSetWire) String() string { return proto.CompactTextString(m) }
func (*ownerSetWire) ProtoMessage()    {}

func (m *configWire) Reset()         { *m = configWire{} }
func (m *configWire) String() string { return proto.CompactTextString(m) }
func (*configWire) ProtoMessage()    {}

func (m *proposeMsgWire) Reset()         { *m = proposeMsgWire{} }
func (m *proposeMsgWire) String() string { return proto.CompactTextString(m) }
func (*proposeMsgWire) ProtoMessage()    {}

func (m *confirmMsgWire) Reset()         { *m = confirmMsgWire{} }
func (m *confirmMsgWire) String() string { return proto.CompactTextString(m) }
func (*confirmMsgWire) ProtoMessage()    {}

func (m *removeMsgWire) Reset()         { *m = removeMsgWire{} }
func (m *removeMsgWire) String() string { return proto.CompactTextString(m) }
func (*removeMsgWire) ProtoMessage()    {}

func (m *executeMsgWire) Reset()         { *m = executeMsgWire{} }
func (m *executeMsgWire) String() string { return proto.CompactTextString(m) }
func (*executeMsgWire) ProtoMessage()    {}

func (m *changeExecutorMsgWire) Reset()         { *m = changeExecutorMsgWire{} }
func (m *changeExecutorMsgWire) String() string { return proto.CompactTextString(m) }
func (*changeExecutorMsgWire) ProtoMessage()    {}

func (m *Transaction) Marshal() ([]byte, error) { return proto.Marshal((*transactionWire)(m)) }
func (m *Transaction) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*transactionWire)(m))
}

func (m *ConfirmationList) Marshal() ([]byte, error) {
	return proto.Marshal((*confirmationListWire)(m))
}
func (m *ConfirmationList) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*confirmationListWire)(m))
}

func (m *OwnerSet) Marshal() ([]byte, error)   { return proto.Marshal((*ownerSetWire)(m)) }
func (m *OwnerSet) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*ownerSetWire)(m)) }

func (m *Config) Marshal() ([]byte, error)   { return proto.Marshal((*configWire)(m)) }
func (m *Config) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*configWire)(m)) }

func (m *ProposeMsg) Marshal() ([]byte, error)   { return proto.Marshal((*proposeMsgWire)(m)) }
func (m *ProposeMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*proposeMsgWire)(m)) }

func (m *ConfirmMsg) Marshal() ([]byte, error)   { return proto.Marshal((*confirmMsgWire)(m)) }
func (m *ConfirmMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*confirmMsgWire)(m)) }

func (m *RemoveMsg) Marshal() ([]byte, error)   { return proto.Marshal((*removeMsgWire)(m)) }
func (m *RemoveMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*removeMsgWire)(m)) }

func (m *ExecuteMsg) Marshal() ([]byte, error)   { return proto.Marshal((*executeMsgWire)(m)) }
func (m *ExecuteMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*executeMsgWire)(m)) }

func (m *ChangeExecutorMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*changeExecutorMsgWire)(m))
}
func (m *ChangeExecutorMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*changeExecutorMsgWire)(m))
}
