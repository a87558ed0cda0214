package token

import (
	"github.com/gogo/protobuf/proto"

	"github.com/blocktrust/gavel"
)

// Wallet holds the token balance of one address. The address is the
// primary key and not repeated inside the record.
type Wallet struct {
	Balance int64 `protobuf:"varint,1,opt,name=balance,proto3" json:"balance,omitempty"`
}

// TokenInfo is the singleton bookkeeping record of the ledger. Receiver is
// credited when supply increases, the burner reserve is debited when
// supply decreases.
type TokenInfo struct {
	TotalSupply int64         `protobuf:"varint,1,opt,name=total_supply,json=totalSupply,proto3" json:"total_supply,omitempty"`
	Receiver    gavel.Address `protobuf:"bytes,2,opt,name=receiver,proto3" json:"receiver,omitempty"`
	Burner      gavel.Address `protobuf:"bytes,3,opt,name=burner,proto3" json:"burner,omitempty"`
}

// SendMsg moves tokens between two wallets. This is the only ledger
// operation open to any caller, everything else goes through governance.
type SendMsg struct {
	Src    gavel.Address `protobuf:"bytes,1,opt,name=src,proto3" json:"src,omitempty"`
	Dest   gavel.Address `protobuf:"bytes,2,opt,name=dest,proto3" json:"dest,omitempty"`
	Amount int64         `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Memo   string        `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

// proto.Marshal prefers the Marshaler interface over reflection, which
// would loop back into our Marshal methods. The alias types have no
// Marshal method, so the reflection codec is used for them.
type (
	walletWire    Wallet
	tokenInfoWire TokenInfo
	sendMsgWire   SendMsg
)

func (m *walletWire) Reset()         { *m = walletWire{} }
func (m *walletWire) String() string { return proto.CompactTextString(m) }
func (*walletWire) ProtoMessage()    {}

func (m *tokenInfoWire) Reset()         { *m = tokenInfoWire{} }
func (m *tokenInfoWire) String() string { return proto.CompactTextString(m) }
func (*tokenInfoWire) ProtoMessage()    {}

func (m *sendMsgWire) Reset()         { *m = sendMsgWire{} }
func (m *sendMsgWire) String() string { return proto.CompactTextString(m) }
func (*sendMsgWire) ProtoMessage()    {}

func (m *Wallet) Marshal() ([]byte, error)   { return proto.Marshal((*walletWire)(m)) }
func (m *Wallet) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*walletWire)(m)) }

func (m *TokenInfo) Marshal() ([]byte, error)   { return proto.Marshal((*tokenInfoWire)(m)) }
func (m *TokenInfo) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*tokenInfoWire)(m)) }

func (m *SendMsg) Marshal() ([]byte, error)   { return proto.Marshal((*sendMsgWire)(m)) }
func (m *SendMsg) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*sendMsgWire)(m)) }
