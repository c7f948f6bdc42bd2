package promotion

import (
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownKind      = errors.New("promotion: unknown rule kind")
	ErrNoCodes          = errors.New("promotion: rule must target at least one product code")
	ErrInvalidThreshold = errors.New("promotion: threshold must be greater than zero")
	ErrNegativeAmount   = errors.New("promotion: discount amount must be zero or greater")
	ErrInvalidBonus     = errors.New("promotion: bonus units must be greater than zero")
	ErrOverlappingRules = errors.New("promotion: product code bound to more than one rule")
)

// Kind tags the variant of a Rule.
type Kind string

const (
	// KindPairedUnit grants bonus units with every step and halves the unit price while the line is non-empty.
	KindPairedUnit Kind = "paired_unit"
	// KindVolumeThreshold takes a flat amount off the unit price once the quantity reaches a threshold.
	KindVolumeThreshold Kind = "volume_threshold"
)

type ID string

const (
	TwoForOneVoucher ID = "TWO_FOR_ONE_VOUCHER"
	BulkTShirt       ID = "BULK_TSHIRT"
)

const (
	CodeVoucher = "VOUCHER"
	CodeTShirt  = "TSHIRT"
	CodeMug     = "MUG"
)

type Rule struct {
	ID          ID
	Kind        Kind
	Codes       []string
	Description string

	// BonusUnits applies to KindPairedUnit; zero means one.
	BonusUnits int
	// Threshold and Amount apply to KindVolumeThreshold.
	Threshold int
	Amount    decimal.Decimal
}

func (r Rule) AppliesTo(code string) bool {
	return slices.Contains(r.Codes, code)
}

// QuantityDelta is the adjustment added on top of the ordinary step (+1 or -1).
func (r Rule) QuantityDelta(step int) int {
	switch r.Kind {
	case KindPairedUnit:
		return r.bonus() * step
	default:
		return 0
	}
}

// FlatDiscount is the amount taken off the unit price for the given quantity.
func (r Rule) FlatDiscount(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	switch r.Kind {
	case KindPairedUnit:
		if quantity == 0 {
			return decimal.Zero
		}
		return unitPrice.Div(decimal.NewFromInt(2))
	case KindVolumeThreshold:
		if quantity >= r.Threshold {
			return r.Amount
		}
		return decimal.Zero
	default:
		return decimal.Zero
	}
}

func (r Rule) bonus() int {
	if r.BonusUnits <= 0 {
		return 1
	}
	return r.BonusUnits
}

func (r Rule) validate() error {
	if len(r.Codes) == 0 {
		return ErrNoCodes
	}
	switch r.Kind {
	case KindPairedUnit:
		if r.BonusUnits < 0 {
			return ErrInvalidBonus
		}
	case KindVolumeThreshold:
		if r.Threshold <= 0 {
			return ErrInvalidThreshold
		}
		if r.Amount.IsNegative() {
			return ErrNegativeAmount
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, r.Kind)
	}
	return nil
}
