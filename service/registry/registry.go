package registry

import (
	"github.com/clearlend/loanclear/service/audit"
	"github.com/clearlend/loanclear/service/ownership"
	"github.com/clearlend/loanclear/service/trade"
	"github.com/clearlend/loanclear/service/waterfall"
)

type Registry interface {
	Ownership() ownership.OwnershipService
	Trade() trade.TradeService
	Waterfall() waterfall.WaterfallService
	Audit() audit.AuditService
}
