package ownership

import (
	"github.com/clearlend/loanclear/lcerrors"
	"github.com/clearlend/loanclear/rest/api"
	"github.com/clearlend/loanclear/rest/api/controller/entities"
	"github.com/clearlend/loanclear/rest/api/controller/parameter"
	"github.com/kataras/iris"
)

// List returns the registry snapshot for every seeded facility.
func List(ctx api.Context) {
	srv := ctx.Services().Ownership()

	ctx.Respond(iris.Map{"facilities": srv.List()})
}

// Get returns the ownership snapshot for one facility.
func Get(ctx api.Context) {
	facilityID, err := parameter.GetParamFacilityID(ctx)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	srv := ctx.Services().Ownership()

	snap, err := srv.Get(facilityID)

	if err != nil {
		ctx.RespondError(err)
	} else {
		ctx.Respond(snap)
	}
}

// Seed replaces a facility's owner list. Administrative.
func Seed(ctx api.Context) {
	facilityID, err := parameter.GetParamFacilityID(ctx)
	if err != nil {
		ctx.RespondError(err)
		return
	}

	sReq := entities.SeedRequest{FacilityID: facilityID}
	if err := ctx.Read(&sReq); err != nil {
		ctx.RespondError(lcerrors.RequestBodyLoadFailure.WithError(err))
		return
	}
	sReq.FacilityID = facilityID

	if err := sReq.Verify(); err != nil {
		ctx.RespondError(err)
		return
	}

	srv := ctx.Services().Ownership()

	snap, err := srv.Seed(sReq.FacilityID, sReq.Owners)

	if err != nil {
		ctx.RespondError(err)
	} else {
		ctx.Respond(snap)
	}
}

// Reset clears the whole ownership registry. Administrative.
func Reset(ctx api.Context) {
	srv := ctx.Services().Ownership()

	srv.Reset()

	ctx.Respond(iris.Map{"message": "all ownership data cleared"})
}
