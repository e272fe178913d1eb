package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPoint_Charge(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name        string
		start       int64
		amount      int64
		expected    int64
		expectedErr error
	}

	tests := []testCase{
		{name: "zero amount", start: 0, amount: 0, expected: 0},
		{name: "normal charge", start: 100, amount: 50, expected: 150},
		{name: "just below cap", start: 0, amount: MaxBalance - 1, expected: MaxBalance - 1},
		{name: "reaches cap", start: 0, amount: MaxBalance, expectedErr: ErrBalanceCapExceeded},
		{name: "far above cap", start: 100, amount: 999_999_900, expectedErr: ErrBalanceCapExceeded},
		{name: "overflow amount", start: 10, amount: 1<<63 - 1, expectedErr: ErrBalanceCapExceeded},
		{name: "negative amount", start: 100, amount: -1, expectedErr: ErrNegativeCharge},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := UserPoint{ID: 1, Point: tt.start}
			got, err := p.Charge(tt.amount)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.ErrorIs(t, err, ErrValidation)
				assert.Equal(t, tt.start, got.Point)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.Point)
			assert.Equal(t, int64(1), got.ID)
			assert.Equal(t, tt.start, p.Point, "receiver must stay unchanged")
		})
	}
}

func TestUserPoint_Use(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name        string
		start       int64
		amount      int64
		expected    int64
		expectedErr error
	}

	tests := []testCase{
		{name: "use all", start: 10, amount: 10, expected: 0},
		{name: "use part", start: 100, amount: 50, expected: 50},
		{name: "zero amount", start: 0, amount: 0, expected: 0},
		{name: "insufficient", start: 50, amount: 100, expectedErr: ErrInsufficientBalance},
		{name: "negative amount", start: 100, amount: -1, expectedErr: ErrNegativeUse},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := UserPoint{ID: 7, Point: tt.start}
			got, err := p.Use(tt.amount)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Equal(t, tt.start, got.Point)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got.Point)
		})
	}
}

func TestValidationError_Is(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, ErrNegativeUse, ErrValidation)
	assert.ErrorIs(t, &ValidationError{Msg: "insufficient balance"}, ErrInsufficientBalance)
	assert.NotErrorIs(t, ErrNegativeUse, ErrNegativeCharge)
	assert.NotErrorIs(t, ErrBalanceCapExceeded, ErrInsufficientBalance)
}

func TestEmptyUserPoint(t *testing.T) {
	t.Parallel()

	p := EmptyUserPoint(5)
	assert.Equal(t, int64(5), p.ID)
	assert.Zero(t, p.Point)
	assert.NotZero(t, p.UpdateMillis)
}

func TestParseTransactionType(t *testing.T) {
	t.Parallel()

	for _, typ := range []TransactionType{TransactionTypeCharge, TransactionTypeUse} {
		parsed, ok := ParseTransactionType(typ.String())
		require.True(t, ok)
		assert.Equal(t, typ, parsed)
	}

	_, ok := ParseTransactionType("REFUND")
	assert.False(t, ok)
	assert.Equal(t, "UNKNOWN", TransactionType(9).String())
}
