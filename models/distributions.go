package models

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

// SettlementTarget carries the bank routing details used to pay an
// owner. Supplied by the caller per calculation, never stored by
// the registry.
type SettlementTarget struct {
	Name    string `json:"name"`
	BIC     string `json:"bic"`
	Account string `json:"account"`
}

// PayeeShare is one row of the waterfall input: an owner's
// settlement details plus their fractional share in [0, 1].
type PayeeShare struct {
	SettlementTarget
	Share decimal.Decimal `json:"share"`
}

func (p PayeeShare) Verify() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required),
		validation.Field(&p.BIC, validation.Required),
		validation.Field(&p.Account, validation.Required),
		validation.Field(&p.Share, validation.By(nonNegativeShare)),
	)
}

func nonNegativeShare(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok || d.IsNegative() {
		return errors.New("must be no less than 0")
	}
	return nil
}

// Distribution is the computed amount owed to one owner for one
// payment event. Produced fresh per calculation and never persisted
// by the engine.
type Distribution struct {
	Name    string          `json:"name"`
	BIC     string          `json:"bic"`
	Account string          `json:"account"`
	Amount  decimal.Decimal `json:"amount"`
}

// DistributionSum returns the total of the computed amounts. The
// caller checks it against the original total after every calculation.
func DistributionSum(dists []Distribution) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range dists {
		sum = sum.Add(d.Amount)
	}
	return sum
}
