package entities

import (
	"github.com/clearlend/loanclear/lcerrors"
	"github.com/clearlend/loanclear/models"
	"github.com/shopspring/decimal"
)

// WaterfallRequest drives one payment distribution. The total is
// either supplied directly or extracted from an attached payment
// advice document.
type WaterfallRequest struct {
	FacilityID string              `json:"facility_id"`
	Total      *decimal.Decimal    `json:"total,omitempty"`
	Base64Doc  string              `json:"base64_doc,omitempty"`
	MimeType   string              `json:"mime_type,omitempty"`
	Payees     []models.PayeeShare `json:"owners"`
}

func (r *WaterfallRequest) Verify() error {
	if r.FacilityID == "" {
		return lcerrors.MissingField.WithMsg("facility_id is required")
	}
	if len(r.Payees) == 0 {
		return lcerrors.EmptyOwnerSet
	}
	for _, p := range r.Payees {
		if err := p.Verify(); err != nil {
			return lcerrors.InvalidRequestParam.WithMsg(
				"each owner must have name, bic, account and share")
		}
	}
	if r.Total == nil && r.Base64Doc == "" {
		return lcerrors.MissingField.WithMsg("either total or base64_doc is required")
	}
	if r.Total != nil && r.Total.IsNegative() {
		return lcerrors.InvalidRequestParam.WithMsg("total must be >= 0")
	}
	if r.MimeType == "" {
		r.MimeType = "application/pdf"
	}

	return nil
}
