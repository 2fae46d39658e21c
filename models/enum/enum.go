package enum

type TradeStatus string

const (
	// trade has been proposed but ownership is untouched
	TradePending TradeStatus = "pending"
	// trade executed, ownership transferred, fingerprint assigned
	TradeApproved TradeStatus = "approved"
	// reserved - no operation produces this status today; abandoned
	// proposals simply stay pending
	TradeRejected TradeStatus = "rejected"
)

func (s TradeStatus) Valid() bool {
	switch s {
	case TradePending, TradeApproved, TradeRejected:
		return true
	}
	return false
}
