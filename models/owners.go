package models

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

// SharePrecision is the number of decimal places an owner's share
// is rounded to after every mutation. Bounds precision drift across
// long transfer chains.
const SharePrecision = 4

// ShareSumTolerance is the allowed deviation of a facility's total
// share sum from 100 while the registry is settled.
var ShareSumTolerance = decimal.New(1, -SharePrecision) // 0.0001

// OwnerShare is one owner's fractional claim on a facility,
// expressed as a percentage in [0, 100].
type OwnerShare struct {
	Name  string          `json:"name"`
	Share decimal.Decimal `json:"share"`
}

func (o OwnerShare) Verify() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Name, validation.Required),
	)
}

// FacilityOwnership is a read-only snapshot of one facility's
// owner list, as returned by the registry.
type FacilityOwnership struct {
	FacilityID string          `json:"facility_id"`
	Owners     []OwnerShare    `json:"owners"`
	Total      decimal.Decimal `json:"total_ownership"`
}

// ShareSum returns the total percentage held across the owner list.
func ShareSum(owners []OwnerShare) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range owners {
		sum = sum.Add(o.Share)
	}
	return sum
}

var hundred = decimal.New(100, 0)

// Settled reports whether the owner list sums to 100 within tolerance.
func Settled(owners []OwnerShare) bool {
	return ShareSum(owners).Sub(hundred).Abs().LessThanOrEqual(ShareSumTolerance)
}
