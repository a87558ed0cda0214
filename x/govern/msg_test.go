package govern

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blocktrust/gavel/errors"
	"github.com/blocktrust/gavel/gaveltest"
)

func TestProposeMsgValidate(t *testing.T) {
	target := gaveltest.NewAddress()
	cases := map[string]struct {
		msg     ProposeMsg
		wantErr *errors.Error
	}{
		"mint": {
			msg: ProposeMsg{Kind: KindIncreaseSupply, Amount: 500},
		},
		"add owner with lock": {
			msg: ProposeMsg{Kind: KindAddOwner, Target: target, LockTime: 3600},
		},
		"unknown kind": {
			msg:     ProposeMsg{Kind: Kind(9), Amount: 1},
			wantErr: errors.ErrInput,
		},
		"zero amount": {
			msg:     ProposeMsg{Kind: KindIncreaseSupply},
			wantErr: errors.ErrAmount,
		},
		"negative amount": {
			msg:     ProposeMsg{Kind: KindDecreaseSupply, Amount: -5},
			wantErr: errors.ErrAmount,
		},
		"missing target": {
			msg:     ProposeMsg{Kind: KindChangeReceiver},
			wantErr: errors.ErrEmpty,
		},
		"description too long": {
			msg: ProposeMsg{
				Kind:        KindIncreaseSupply,
				Amount:      1,
				Description: strings.Repeat("x", maxDescriptionSize+1),
			},
			wantErr: errors.ErrInput,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err))
			}
		})
	}
}

func TestRefMsgValidate(t *testing.T) {
	assert.NoError(t, ConfirmMsg{Kind: KindAddOwner, Index: 0}.Validate())
	assert.True(t, errors.ErrInput.Is(ConfirmMsg{Kind: KindAddOwner, Index: -1}.Validate()))
	assert.True(t, errors.ErrInput.Is(ExecuteMsg{Kind: KindInvalid}.Validate()))
	assert.True(t, errors.ErrInput.Is(RemoveMsg{Kind: Kind(42), Index: 1}.Validate()))
}

func TestChangeExecutorMsgValidate(t *testing.T) {
	assert.NoError(t, ChangeExecutorMsg{Executor: gaveltest.NewAddress()}.Validate())
	assert.True(t, errors.ErrEmpty.Is(ChangeExecutorMsg{}.Validate()))
}
