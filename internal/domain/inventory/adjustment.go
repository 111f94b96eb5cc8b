package inventory

import (
	"strings"

	"github.com/stockroom/backend/internal/domain/shared"
)

// AdjustmentReason is the recorded cause of a manual stock correction
type AdjustmentReason string

const (
	AdjustmentReasonCorrection AdjustmentReason = "correction"
	AdjustmentReasonDamaged    AdjustmentReason = "damaged"
	AdjustmentReasonLost       AdjustmentReason = "lost"
	AdjustmentReasonFound      AdjustmentReason = "found"
	AdjustmentReasonExpired    AdjustmentReason = "expired"
	AdjustmentReasonOther      AdjustmentReason = "other"
)

// AllAdjustmentReasons lists every accepted reason
func AllAdjustmentReasons() []AdjustmentReason {
	return []AdjustmentReason{
		AdjustmentReasonCorrection,
		AdjustmentReasonDamaged,
		AdjustmentReasonLost,
		AdjustmentReasonFound,
		AdjustmentReasonExpired,
		AdjustmentReasonOther,
	}
}

// IsValid checks if the reason is a known value
func (r AdjustmentReason) IsValid() bool {
	for _, known := range AllAdjustmentReasons() {
		if r == known {
			return true
		}
	}
	return false
}

// String returns the string representation
func (r AdjustmentReason) String() string {
	return string(r)
}

// ParseAdjustmentReason normalizes and validates a reason string
func ParseAdjustmentReason(s string) (AdjustmentReason, error) {
	r := AdjustmentReason(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", shared.NewDomainError("INVALID_INPUT", "Unknown adjustment reason: "+s)
	}
	return r, nil
}

// Adjustment is an immutable audit record of a manual stock correction
type Adjustment struct {
	shared.BaseEntity
	ProductID      int64
	WarehouseID    int64
	QuantityChange int64
	Reason         AdjustmentReason
	Notes          string
	CreatedBy      string
	PreviousOnHand int64
	NewOnHand      int64
}

// NewAdjustment builds the audit record for a delta applied to an entry.
// It does not touch the entry.
func NewAdjustment(entry *StockEntry, delta int64, reason AdjustmentReason, notes, createdBy string) (*Adjustment, error) {
	if entry == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Stock entry is required")
	}
	if delta == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity change cannot be zero")
	}
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown adjustment reason: "+string(reason))
	}

	return &Adjustment{
		BaseEntity:     shared.NewBaseEntity(),
		ProductID:      entry.ProductID,
		WarehouseID:    entry.WarehouseID,
		QuantityChange: delta,
		Reason:         reason,
		Notes:          strings.TrimSpace(notes),
		CreatedBy:      strings.TrimSpace(createdBy),
		PreviousOnHand: entry.OnHand,
		NewOnHand:      entry.OnHand + delta,
	}, nil
}
