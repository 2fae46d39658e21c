package binder

import (
	"github.com/clearlend/loanclear/rest/api"
	"github.com/clearlend/loanclear/rest/api/controller/documents"
	"github.com/clearlend/loanclear/rest/api/controller/ownership"
	"github.com/clearlend/loanclear/rest/api/controller/trade"
	"github.com/clearlend/loanclear/rest/api/controller/waterfall"
	"github.com/clearlend/loanclear/rest/api/middleware/httplogger"
	"github.com/clearlend/loanclear/utils"
	"github.com/iris-contrib/middleware/cors"
	"github.com/kataras/iris"
)

// Core binds the clearing API handlers to their endpoints
func Core(api *api.API, r iris.Party) {
	r.Use(httplogger.New())

	// CORS
	{
		getOrigins := func() []string {
			switch {
			case utils.Prod():
				return []string{"https://app.clearlend.com"}
			default:
				// staging/dev mode
				return []string{"*"}
			}
		}

		crs := cors.New(cors.Options{
			AllowedOrigins: getOrigins(),
			AllowedMethods: []string{
				iris.MethodGet,
				iris.MethodPost,
				iris.MethodDelete,
				iris.MethodOptions,
			},
			AllowedHeaders:     []string{"*"},
			AllowCredentials:   true,
			OptionsPassthrough: false,
		})

		r.Use(crs)
		r.AllowMethods(iris.MethodOptions) // <- important for the preflight.
	}

	// trade lifecycle
	r.Post("/trades", api.NoAuth(trade.Propose, utils.StandBy()))
	r.Post("/trades/validate", api.NoAuth(trade.Validate))
	r.Post("/trades/parse", api.NoAuth(trade.Parse))
	r.Post("/trades/{trade_id}/approve", api.NoAuth(trade.Approve, utils.StandBy()))
	r.Get("/trades", api.NoAuth(trade.List))

	// ownership registry
	r.Get("/ownership", api.NoAuth(ownership.List))
	r.Get("/ownership/{facility_id}", api.NoAuth(ownership.Get))
	r.Post("/ownership/{facility_id}", api.AuthenticateAdmin(ownership.Seed, utils.StandBy()))
	r.Delete("/ownership", api.AuthenticateAdmin(ownership.Reset, utils.StandBy()))

	// payment waterfall
	r.Post("/waterfall", api.NoAuth(waterfall.Distribute, utils.StandBy()))

	// document upload
	r.Post("/documents", api.NoAuth(documents.Upload))
}
