package api

import (
	"sync"

	"github.com/clearlend/loanclear/lcerrors"
	"github.com/clearlend/loanclear/service/registry"
	"github.com/clearlend/loanclear/utils/log"
	"github.com/kataras/iris"
)

// API contains the authentication and services for the loanclear API
type API struct {
	authenticator Authenticator
	pool          *sync.Pool
	services      registry.Registry
}

// New intializes the API
func New(authenticator Authenticator, services registry.Registry) *API {
	var contextPool = sync.Pool{New: func() interface{} {
		return &context{}
	}}

	return &API{
		authenticator: authenticator,
		pool:          &contextPool,
		services:      services,
	}
}

func (api *API) acquire(original iris.Context) Context {
	ctx := api.pool.Get().(*context)
	ctx.session = nil
	ctx.Context = original
	ctx.services = api.services
	return ctx
}

func (api *API) release(ctx Context) {
	api.pool.Put(ctx)
}

func (api *API) Handler(h func(Context)) iris.Handler {
	return func(original iris.Context) {
		ctx := api.acquire(original)

		// propagate panics up after logging
		defer func() {
			if r := recover(); r != nil {
				log.Panic("http request panic", "error", r)
			}
		}()

		h(ctx)

		api.release(ctx)
	}
}

func (api *API) NoAuth(handler func(Context), standBy ...bool) iris.Handler {
	if len(standBy) > 0 && standBy[0] {
		return api.Handler(func(ctx Context) {
			ctx.RespondError(lcerrors.Forbidden.WithMsg("stand by mode"))
		})
	}

	return api.Handler(handler)
}

func (api *API) AuthenticateAdmin(handler func(Context), standBy ...bool) iris.Handler {
	if len(standBy) > 0 && standBy[0] {
		return api.Handler(func(ctx Context) {
			ctx.RespondError(lcerrors.Forbidden.WithMsg("stand by mode"))
		})
	}

	return api.Handler(func(ctx Context) {
		if err := api.authenticator.AuthenticateAdmin(ctx); err != nil {
			ctx.RespondError(lcerrors.Unauthorized.WithMsg(err.Error()))
			return
		}
		handler(ctx)
	})
}
