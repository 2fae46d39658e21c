package entities

import (
	"github.com/clearlend/loanclear/lcerrors"
	"github.com/clearlend/loanclear/models"
)

type SeedRequest struct {
	FacilityID string              `json:"facility_id"`
	Owners     []models.OwnerShare `json:"owners"`
}

func (r *SeedRequest) Verify() error {
	if r.FacilityID == "" {
		return lcerrors.MissingField.WithMsg("facility_id is required")
	}
	if len(r.Owners) == 0 {
		return lcerrors.MissingField.WithMsg("owners array is required")
	}
	for _, o := range r.Owners {
		if err := o.Verify(); err != nil {
			return lcerrors.InvalidRequestParam.WithMsg("each owner must have a name and a share")
		}
	}

	return nil
}
