package inventory

import (
	"errors"
	"math"
	"testing"

	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEntry(t *testing.T, onHand, reserved int64) *StockEntry {
	t.Helper()
	e, err := NewStockEntry(1, 1, onHand)
	require.NoError(t, err)
	e.Reserved = reserved
	return e
}

func TestNewStockEntry(t *testing.T) {
	t.Run("opens entry", func(t *testing.T) {
		e, err := NewStockEntry(3, 7, 12)
		require.NoError(t, err)
		assert.Equal(t, int64(3), e.ProductID)
		assert.Equal(t, int64(7), e.WarehouseID)
		assert.Equal(t, int64(12), e.OnHand)
		assert.Zero(t, e.Reserved)
	})

	t.Run("rejects missing keys and negative quantity", func(t *testing.T) {
		_, err := NewStockEntry(0, 1, 0)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		_, err = NewStockEntry(1, 0, 0)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		_, err = NewStockEntry(1, 1, -1)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestStockEntry_CreditDebit(t *testing.T) {
	t.Run("credit then debit restores on hand", func(t *testing.T) {
		e := newEntry(t, 40, 0)
		require.NoError(t, e.Credit(15))
		assert.Equal(t, int64(55), e.OnHand)
		require.NoError(t, e.Debit(15))
		assert.Equal(t, int64(40), e.OnHand)
	})

	t.Run("debit below zero fails and leaves entry unchanged", func(t *testing.T) {
		e := newEntry(t, 10, 0)
		err := e.Debit(30)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, int64(10), e.OnHand)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, int64(10), domainErr.Details["on_hand"])
		assert.Equal(t, int64(-30), domainErr.Details["requested"])
	})

	t.Run("debit cannot consume reserved units", func(t *testing.T) {
		e := newEntry(t, 10, 4)
		assert.ErrorIs(t, e.Debit(7), shared.ErrInsufficientStock)
		require.NoError(t, e.Debit(6))
		assert.Equal(t, int64(4), e.OnHand)
	})

	t.Run("non-positive quantities are rejected", func(t *testing.T) {
		e := newEntry(t, 10, 0)
		assert.ErrorIs(t, e.Credit(0), shared.ErrInvalidInput)
		assert.ErrorIs(t, e.Debit(-2), shared.ErrInvalidInput)
	})

	t.Run("credit past the int64 range is invalid input", func(t *testing.T) {
		e := newEntry(t, 10, 0)
		err := e.Credit(math.MaxInt64)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.NotErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, int64(10), e.OnHand)

		require.NoError(t, e.Credit(math.MaxInt64-10))
		assert.Equal(t, int64(math.MaxInt64), e.OnHand)
	})
}

func TestStockEntry_ApplyDelta(t *testing.T) {
	t.Run("negative delta within stock", func(t *testing.T) {
		e := newEntry(t, 20, 5)
		require.NoError(t, e.ApplyDelta(-10))
		assert.Equal(t, int64(10), e.OnHand)
		assert.Equal(t, int64(5), e.Reserved)
	})

	t.Run("delta driving stock negative fails", func(t *testing.T) {
		e := newEntry(t, 5, 0)
		assert.ErrorIs(t, e.ApplyDelta(-10), shared.ErrInsufficientStock)
		assert.Equal(t, int64(5), e.OnHand)
	})

	t.Run("delta dropping under reserved fails", func(t *testing.T) {
		e := newEntry(t, 20, 15)
		assert.ErrorIs(t, e.ApplyDelta(-10), shared.ErrInsufficientStock)
		assert.Equal(t, int64(20), e.OnHand)
	})

	t.Run("zero delta rejected", func(t *testing.T) {
		e := newEntry(t, 5, 0)
		assert.ErrorIs(t, e.ApplyDelta(0), shared.ErrInvalidInput)
	})

	t.Run("positive delta past the int64 range is invalid input", func(t *testing.T) {
		e := newEntry(t, 10, 0)
		err := e.ApplyDelta(math.MaxInt64)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, int64(math.MaxInt64), de.Details["requested"])
		assert.Equal(t, int64(10), e.OnHand)
	})

	t.Run("most negative delta is insufficient stock", func(t *testing.T) {
		e := newEntry(t, 10, 0)
		assert.ErrorIs(t, e.ApplyDelta(math.MinInt64), shared.ErrInsufficientStock)
		assert.Equal(t, int64(10), e.OnHand)
	})
}

func TestStockEntry_SetReserved(t *testing.T) {
	e := newEntry(t, 10, 0)

	require.NoError(t, e.SetReserved(10))
	assert.Equal(t, int64(0), e.Available())

	assert.ErrorIs(t, e.SetReserved(11), shared.ErrInvalidState)
	assert.Equal(t, int64(10), e.Reserved)

	assert.ErrorIs(t, e.SetReserved(-1), shared.ErrInvalidInput)
}

func TestClassifyStock(t *testing.T) {
	tests := []struct {
		onHand, reorder int64
		want            StockStatus
	}{
		{0, 10, StockStatusOutOfStock},
		{1, 10, StockStatusLowStock},
		{10, 10, StockStatusLowStock},
		{11, 10, StockStatusInStock},
		{0, 0, StockStatusOutOfStock},
		{1, 0, StockStatusInStock},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyStock(tt.onHand, tt.reorder), "on_hand=%d reorder=%d", tt.onHand, tt.reorder)
	}
}

func TestParseAdjustmentReason(t *testing.T) {
	r, err := ParseAdjustmentReason(" Damaged ")
	require.NoError(t, err)
	assert.Equal(t, AdjustmentReasonDamaged, r)

	_, err = ParseAdjustmentReason("stolen")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestNewAdjustment(t *testing.T) {
	e := newEntry(t, 20, 0)

	adj, err := NewAdjustment(e, -10, AdjustmentReasonDamaged, " crushed pallet ", "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(-10), adj.QuantityChange)
	assert.Equal(t, int64(20), adj.PreviousOnHand)
	assert.Equal(t, int64(10), adj.NewOnHand)
	assert.Equal(t, "crushed pallet", adj.Notes)
	assert.Equal(t, int64(20), e.OnHand, "building the record must not touch the entry")

	_, err = NewAdjustment(e, 0, AdjustmentReasonDamaged, "", "")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = NewAdjustment(e, 3, AdjustmentReason("bogus"), "", "")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
