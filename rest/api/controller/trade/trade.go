package trade

import (
	"github.com/clearlend/loanclear/external/docai"
	"github.com/clearlend/loanclear/lcerrors"
	"github.com/clearlend/loanclear/rest/api"
	"github.com/clearlend/loanclear/rest/api/controller/entities"
	"github.com/clearlend/loanclear/rest/api/controller/parameter"
	"github.com/kataras/iris"
)

// Propose records a trade event in pending state. Ownership is not
// touched until approval.
func Propose(ctx api.Context) {
	tReq := entities.TradeRequest{}
	if err := ctx.Read(&tReq); err != nil {
		ctx.RespondError(lcerrors.RequestBodyLoadFailure.WithError(err))
		return
	}

	if err := tReq.Verify(); err != nil {
		ctx.RespondError(err)
		return
	}

	srv := ctx.Services().Trade()

	event, err := srv.Propose(tReq.FacilityID, tReq.Seller, tReq.Buyer, tReq.Amount, tReq.Percentage)

	if err != nil {
		ctx.RespondError(err)
	} else {
		ctx.Respond(iris.Map{"trade": event})
	}
}

// Validate advises whether a proposal would currently clear. The
// approval step re-validates regardless.
func Validate(ctx api.Context) {
	tReq := entities.TradeRequest{}
	if err := ctx.Read(&tReq); err != nil {
		ctx.RespondError(lcerrors.RequestBodyLoadFailure.WithError(err))
		return
	}

	srv := ctx.Services().Trade()

	failures := srv.Validate(tReq.FacilityID, tReq.Seller, tReq.Buyer, tReq.Percentage)

	if len(failures) > 0 {
		ctx.Respond(iris.Map{"valid": false, "errors": failures})
	} else {
		ctx.Respond(iris.Map{"valid": true})
	}
}

// Approve executes the ownership transfer for a pending trade.
func Approve(ctx api.Context) {
	tradeID, err := parameter.GetParamTradeID(ctx)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	srv := ctx.Services().Trade()

	event, owners, err := srv.Approve(tradeID)

	if err != nil {
		ctx.RespondError(err)
	} else {
		ctx.Respond(iris.Map{"trade": event, "ownership": owners})
	}
}

// List returns trade events newest first, optionally filtered by
// facility_id and/or status.
func List(ctx api.Context) {
	status, err := parameter.GetQueryStatus(ctx)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	srv := ctx.Services().Trade()

	events := srv.List(ctx.URLParam("facility_id"), status)

	ctx.Respond(iris.Map{"count": len(events), "events": events})
}

// Parse extracts a structured trade proposal from an uploaded
// notice of assignment via the document extraction service.
func Parse(ctx api.Context) {
	pReq := entities.ParseRequest{}
	if err := ctx.Read(&pReq); err != nil {
		ctx.RespondError(lcerrors.RequestBodyLoadFailure.WithError(err))
		return
	}

	if err := pReq.Verify(); err != nil {
		ctx.RespondError(err)
		return
	}

	extraction, err := docai.Client().ExtractTrade(pReq.MimeType, pReq.Base64)

	if err != nil {
		ctx.RespondError(lcerrors.InternalServerError.WithMsg("trade extraction failed").WithError(err))
	} else {
		ctx.Respond(extraction)
	}
}
