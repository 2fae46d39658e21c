package parameter

import (
	"github.com/clearlend/loanclear/lcerrors"
	"github.com/clearlend/loanclear/models/enum"
	"github.com/clearlend/loanclear/rest/api"
)

func GetParamFacilityID(ctx api.Context) (string, error) {
	facilityID := ctx.Params().Get("facility_id")
	if facilityID == "" {
		return "", lcerrors.InvalidRequestParam.WithMsg("facility_id is required")
	}
	return facilityID, nil
}

func GetParamTradeID(ctx api.Context) (string, error) {
	tradeID := ctx.Params().Get("trade_id")
	if tradeID == "" {
		return "", lcerrors.InvalidRequestParam.WithMsg("trade_id is required")
	}
	return tradeID, nil
}

// GetQueryStatus parses the optional status filter. An empty value
// means no filtering.
func GetQueryStatus(ctx api.Context) (enum.TradeStatus, error) {
	q := ctx.URLParam("status")
	if q == "" {
		return "", nil
	}

	status := enum.TradeStatus(q)
	if !status.Valid() {
		return "", lcerrors.InvalidRequestParam.WithMsg("status must be pending, approved or rejected")
	}
	return status, nil
}
