package waterfall

import (
	"github.com/clearlend/loanclear/export/paycsv"
	"github.com/clearlend/loanclear/external/docai"
	"github.com/clearlend/loanclear/lcerrors"
	"github.com/clearlend/loanclear/rest/api"
	"github.com/clearlend/loanclear/rest/api/controller/entities"
	"github.com/clearlend/loanclear/utils/clock"
	"github.com/kataras/iris"
	"github.com/shopspring/decimal"
)

// Distribute runs one payment waterfall: resolve the total (given
// directly or extracted from a payment advice document), split it
// across the supplied payees, and render the payment instruction
// CSV with its integrity check.
func Distribute(ctx api.Context) {
	start := clock.Now()

	wReq := entities.WaterfallRequest{}
	if err := ctx.Read(&wReq); err != nil {
		ctx.RespondError(lcerrors.RequestBodyLoadFailure.WithError(err))
		return
	}

	if err := wReq.Verify(); err != nil {
		ctx.RespondError(err)
		return
	}

	var (
		total decimal.Decimal
		err   error
	)

	if wReq.Total != nil {
		total = *wReq.Total
	} else {
		total, err = docai.Client().ExtractTotalPayment(wReq.MimeType, wReq.Base64Doc)
		if err != nil {
			ctx.RespondError(lcerrors.InternalServerError.WithMsg("payment extraction failed").WithError(err))
			return
		}
	}

	srv := ctx.Services().Waterfall()

	dists, err := srv.Calculate(total, wReq.Payees)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	csv, err := paycsv.Render(dists)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	// the rendered output is re-parsed and reconciled before being
	// handed to anyone
	if err := paycsv.VerifyIntegrity(csv, total); err != nil {
		ctx.RespondError(err)
		return
	}

	ctx.Respond(iris.Map{
		"facility_id":   wReq.FacilityID,
		"total_cash_in": total,
		"distribution":  dists,
		"csv":           csv,
		"elapsed":       clock.Since(start).Seconds(),
	})
}
