package order

import (
	"strings"

	"github.com/stockroom/backend/internal/domain/inventory"
	"github.com/stockroom/backend/internal/domain/shared"
)

// Kind distinguishes the direction of an order's ledger effect
type Kind string

const (
	KindReceipt  Kind = "receipt"
	KindDelivery Kind = "delivery"
	KindTransfer Kind = "transfer"
)

// AllKinds lists every order kind
func AllKinds() []Kind {
	return []Kind{KindReceipt, KindDelivery, KindTransfer}
}

// IsValid checks if the kind is a known value
func (k Kind) IsValid() bool {
	switch k {
	case KindReceipt, KindDelivery, KindTransfer:
		return true
	}
	return false
}

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// Plural returns the collection name used in URLs
func (k Kind) Plural() string {
	if k == KindDelivery {
		return "deliveries"
	}
	return string(k) + "s"
}

// ReferencePrefix returns the prefix of the order's display label
func (k Kind) ReferencePrefix() string {
	switch k {
	case KindReceipt:
		return "WH/IN/"
	case KindDelivery:
		return "WH/OUT/"
	case KindTransfer:
		return "WH/INT/"
	}
	return "WH/"
}

// ParseKind accepts a kind in singular or plural form
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range AllKinds() {
		if s == string(k) || s == k.Plural() {
			return k, nil
		}
	}
	return "", shared.NewDomainError("INVALID_INPUT", "Unknown order kind: "+s)
}

func (k Kind) movementTypes() (out, in inventory.MovementType) {
	switch k {
	case KindReceipt:
		return "", inventory.MovementTypeReceipt
	case KindDelivery:
		return inventory.MovementTypeDelivery, ""
	default:
		return inventory.MovementTypeTransferOut, inventory.MovementTypeTransferIn
	}
}
