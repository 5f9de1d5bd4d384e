package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountAdd(t *testing.T) {
	sum, err := Amount(100).Add(50)
	require.NoError(t, err)
	assert.Equal(t, Amount(150), sum)
}

func TestAmountAddOverflow(t *testing.T) {
	_, err := Amount(math.MaxUint64).Add(1)
	assert.ErrorIs(t, err, ErrArithmeticOverflow)

	// Max value itself is still representable
	sum, err := Amount(math.MaxUint64 - 1).Add(1)
	require.NoError(t, err)
	assert.Equal(t, Amount(math.MaxUint64), sum)
}

func TestAmountSub(t *testing.T) {
	diff, err := Amount(100).Sub(40)
	require.NoError(t, err)
	assert.Equal(t, Amount(60), diff)
}

func TestAmountSubUnderflow(t *testing.T) {
	_, err := Amount(40).Sub(100)
	assert.ErrorIs(t, err, ErrArithmeticUnderflow)
}

func TestAmountMul(t *testing.T) {
	product, err := Amount(100).Mul(10)
	require.NoError(t, err)
	assert.Equal(t, Amount(1000), product)
}

func TestAmountMulZero(t *testing.T) {
	product, err := Amount(0).Mul(10)
	require.NoError(t, err)
	assert.Equal(t, Amount(0), product)

	product, err = Amount(100).Mul(0)
	require.NoError(t, err)
	assert.Equal(t, Amount(0), product)
}

func TestAmountMulOverflow(t *testing.T) {
	_, err := Amount(math.MaxUint64/2 + 1).Mul(2)
	assert.ErrorIs(t, err, ErrArithmeticOverflow)
}

func TestAmountSplitEven(t *testing.T) {
	share, remainder, err := Amount(600).Split(3)
	require.NoError(t, err)
	assert.Equal(t, Amount(200), share)
	assert.Equal(t, Amount(0), remainder)
}

func TestAmountSplitWithRemainder(t *testing.T) {
	share, remainder, err := Amount(700).Split(3)
	require.NoError(t, err)
	assert.Equal(t, Amount(233), share)
	assert.Equal(t, Amount(1), remainder)

	// Nothing is lost to integer division
	assert.Equal(t, Amount(700), share*3+remainder)
}

func TestAmountSplitRejectsEmptyWinnerSet(t *testing.T) {
	_, _, err := Amount(100).Split(0)
	assert.ErrorIs(t, err, ErrInvalidWinners)
}
