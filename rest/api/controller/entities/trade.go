package entities

import (
	"github.com/clearlend/loanclear/lcerrors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.New(100, 0)

type TradeRequest struct {
	FacilityID string          `json:"facility_id"`
	Seller     string          `json:"seller"`
	Buyer      string          `json:"buyer"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

func (r *TradeRequest) Verify() error {
	if r.FacilityID == "" {
		return lcerrors.MissingField.WithMsg("facility_id is required")
	}
	if r.Seller == "" {
		return lcerrors.MissingField.WithMsg("seller is required")
	}
	if r.Buyer == "" {
		return lcerrors.MissingField.WithMsg("buyer is required")
	}
	if !r.Amount.IsPositive() {
		return lcerrors.MissingField.WithMsg("amount is required")
	}
	if !r.Percentage.IsPositive() {
		return lcerrors.InvalidRequestParam.WithMsg("percentage must be > 0")
	}
	if r.Percentage.GreaterThan(hundred) {
		return lcerrors.InvalidRequestParam.WithMsg("percentage cannot exceed 100")
	}

	return nil
}

type ParseRequest struct {
	Base64   string `json:"base64"`
	MimeType string `json:"mime_type"`
}

func (r *ParseRequest) Verify() error {
	if r.Base64 == "" {
		return lcerrors.MissingField.WithMsg("no file data provided")
	}
	if r.MimeType == "" {
		r.MimeType = "application/pdf"
	}

	return nil
}
