// Package paycsv renders a distribution set into the payment
// instruction CSV consumed by downstream banking systems, and
// re-parses its own output to prove the amounts still reconcile.
package paycsv

import (
	"fmt"

	"github.com/clearlend/loanclear/lcerrors"
	"github.com/clearlend/loanclear/metrics"
	"github.com/clearlend/loanclear/models"
	"github.com/clearlend/loanclear/utils/env"
	"github.com/clearlend/loanclear/utils/log"
	"github.com/clearlend/loanclear/utils/money"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// csvTolerance is the reconciliation tolerance after the 2-decimal
// output rounding: one minor currency unit.
var csvTolerance = decimal.New(1, -2)

type row struct {
	BankName string `csv:"Bank Name"`
	BIC      string `csv:"BIC Code"`
	Currency string `csv:"Currency"`
	Account  string `csv:"Account Number"`
	Amount   string `csv:"Amount"`
}

// Render produces the CSV for a distribution set. Amounts are
// formatted to exactly two decimal places; the currency code is
// fixed for the whole output.
func Render(dists []models.Distribution) (string, error) {
	currency := env.GetVar("PAYMENT_CURRENCY")

	rows := make([]row, len(dists))
	for i, d := range dists {
		rows[i] = row{
			BankName: d.Name,
			BIC:      d.BIC,
			Currency: currency,
			Account:  d.Account,
			Amount:   money.FormatAmount(d.Amount),
		}
	}

	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", lcerrors.InternalServerError.WithError(err)
	}
	return out, nil
}

// VerifyIntegrity re-parses the rendered CSV and checks that the
// Amount column still sums to the original total within one minor
// currency unit. A failure is an engine defect, not an input error.
func VerifyIntegrity(csv string, total decimal.Decimal) error {
	var rows []row
	if err := gocsv.UnmarshalString(csv, &rows); err != nil {
		return lcerrors.InternalServerError.WithError(err)
	}

	sum := decimal.Zero
	for _, r := range rows {
		amount, err := decimal.NewFromString(r.Amount)
		if err != nil {
			return lcerrors.InternalServerError.WithError(
				fmt.Errorf("unparseable amount %q in rendered csv", r.Amount))
		}
		sum = sum.Add(amount)
	}

	if diff := sum.Sub(total).Abs(); diff.GreaterThan(csvTolerance) {
		metrics.Core.IntegrityViolation()
		log.Error("csv integrity check failed",
			"sum", sum.String(),
			"total", total.String(),
			"diff", diff.String(),
		)
		return lcerrors.IntegrityViolation.WithError(
			fmt.Errorf("csv sum %v != total %v (diff %v)", sum, total, diff))
	}

	return nil
}
