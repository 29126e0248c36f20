package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryKindHasAnEffect(t *testing.T) {
	want := map[TransactionKind]Effect{
		KindDeposit:             EffectCredit,
		KindSubscriptionPayment: EffectDebit,
		KindWithdrawal:          EffectDebit,
		KindRefund:              EffectNone,
		KindTransfer:            EffectNone,
	}
	require.Len(t, AllKinds, len(want))
	for _, k := range AllKinds {
		effect, ok := k.Effect()
		assert.True(t, ok, k)
		assert.Equal(t, want[k], effect, k)
	}
}

func TestUnknownKind(t *testing.T) {
	for _, k := range []TransactionKind{"", "deposit", "CHARGEBACK"} {
		assert.False(t, k.Valid(), k)
	}
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to TransactionStatus
		ok       bool
	}{
		{StatusPending, StatusCompleted, true},
		{StatusPending, StatusFailed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusFailed, StatusCompleted, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTransactionTransition(t *testing.T) {
	tx := Transaction{Reference: "ref", Status: StatusPending}
	require.NoError(t, tx.Transition(StatusCompleted))
	assert.Equal(t, StatusCompleted, tx.Status)

	err := tx.Transition(StatusCancelled)
	require.Error(t, err)
	assert.Equal(t, StatusCompleted, tx.Status)
}
