package lcreg

import (
	"github.com/clearlend/loanclear/service/audit"
	"github.com/clearlend/loanclear/service/ownership"
	"github.com/clearlend/loanclear/service/registry"
	"github.com/clearlend/loanclear/service/trade"
	"github.com/clearlend/loanclear/service/waterfall"
)

var Services registry.Registry

type lcRegistry struct{}

func (r *lcRegistry) Ownership() ownership.OwnershipService {
	return ownership.Service()
}

func (r *lcRegistry) Audit() audit.AuditService {
	return audit.Service()
}

func (r *lcRegistry) Trade() trade.TradeService {
	return trade.Service(r.Ownership(), r.Audit())
}

func (r *lcRegistry) Waterfall() waterfall.WaterfallService {
	return waterfall.Service()
}

func init() {
	Services = &lcRegistry{}
}
