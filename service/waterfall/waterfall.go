package waterfall

import (
	"fmt"

	"github.com/clearlend/loanclear/lcerrors"
	"github.com/clearlend/loanclear/metrics"
	"github.com/clearlend/loanclear/models"
	"github.com/clearlend/loanclear/utils/log"
	"github.com/clearlend/loanclear/utils/money"
	"github.com/shopspring/decimal"
)

// one, expressed as a decimal for share-sum comparison
var one = decimal.New(1, 0)

// WaterfallService splits a payment total across fractional owners
// with an exact-sum guarantee.
type WaterfallService interface {
	Calculate(total decimal.Decimal, payees []models.PayeeShare) ([]models.Distribution, error)
}

type waterfallService struct {
	WaterfallService
}

func Service() WaterfallService {
	return &waterfallService{}
}

// Calculate computes each payee's pro-rata amount and reconciles the
// arithmetic residual onto the LAST payee in the supplied order.
// Callers that want the remainder routed to a designated agent place
// that party last. The output sum always equals the input total.
func (s *waterfallService) Calculate(total decimal.Decimal, payees []models.PayeeShare) ([]models.Distribution, error) {
	if len(payees) == 0 {
		return nil, lcerrors.EmptyOwnerSet
	}

	if total.IsNegative() {
		return nil, lcerrors.InvalidRequestParam.WithMsg("total must be >= 0")
	}

	shareSum := decimal.Zero
	for _, p := range payees {
		if p.Share.IsNegative() {
			return nil, lcerrors.InvalidRequestParam.WithMsg(
				fmt.Sprintf("owner share for %q must be >= 0", p.Name))
		}
		shareSum = shareSum.Add(p.Share)
	}

	if shareSum.Sub(one).Abs().GreaterThan(money.Epsilon) {
		return nil, lcerrors.ShareSumMismatch.WithMsg(
			fmt.Sprintf("owner shares must sum to 1.0, got %s", shareSum.String()))
	}

	// no rounding before the residual is reconciled
	dists := make([]models.Distribution, len(payees))
	distributed := decimal.Zero
	for i, p := range payees {
		amount := total.Mul(p.Share)
		dists[i] = models.Distribution{
			Name:    p.Name,
			BIC:     p.BIC,
			Account: p.Account,
			Amount:  amount,
		}
		distributed = distributed.Add(amount)
	}

	// the last payee absorbs the arithmetic residual in full
	remainder := total.Sub(distributed)
	dists[len(dists)-1].Amount = dists[len(dists)-1].Amount.Add(remainder)

	// the calculation is never trusted silently
	if finalSum := models.DistributionSum(dists); !finalSum.Equal(total) {
		metrics.Core.IntegrityViolation()
		log.Error("waterfall integrity check failed",
			"total", total.String(),
			"distributed", finalSum.String(),
			"remainder", remainder.String(),
		)
		return nil, lcerrors.IntegrityViolation.WithError(
			fmt.Errorf("distributed %v != total %v", finalSum, total))
	}

	metrics.Core.Distribution()

	return dists, nil
}
