package trade

import (
	"fmt"
	"sort"
	"sync"

	"github.com/clearlend/loanclear/lcerrors"
	"github.com/clearlend/loanclear/metrics"
	"github.com/clearlend/loanclear/models"
	"github.com/clearlend/loanclear/models/enum"
	"github.com/clearlend/loanclear/service/audit"
	"github.com/clearlend/loanclear/service/ownership"
	"github.com/clearlend/loanclear/utils/clock"
	"github.com/clearlend/loanclear/utils/log"
	"github.com/shopspring/decimal"
)

// TradeService drives the trade lifecycle: propose records a pending
// event, validate advises on it against the live registry, and
// approve - the only mutating step in the core - executes the
// ownership transfer and seals the event with an audit fingerprint.
type TradeService interface {
	Propose(facilityID, seller, buyer string, amount, percentage decimal.Decimal) (*models.TradeEvent, error)
	Validate(facilityID, seller, buyer string, percentage decimal.Decimal) []string
	Approve(tradeID string) (*models.TradeEvent, []models.OwnerShare, error)
	List(facilityID string, status enum.TradeStatus) []models.TradeEvent
	GetByID(tradeID string) (*models.TradeEvent, error)
}

type tradeStore struct {
	sync.Mutex
	events []*models.TradeEvent
}

var globalStore = &tradeStore{}

type tradeService struct {
	TradeService
	store     *tradeStore
	ownership ownership.OwnershipService
	audit     audit.AuditService
}

// Service returns a trade lifecycle bound to the process-wide event
// log and the given collaborators.
func Service(reg ownership.OwnershipService, rec audit.AuditService) TradeService {
	return &tradeService{
		store:     globalStore,
		ownership: reg,
		audit:     rec,
	}
}

// NewService builds a lifecycle with an isolated event log, for tests.
func NewService(reg ownership.OwnershipService, rec audit.AuditService) TradeService {
	return &tradeService{
		store:     &tradeStore{},
		ownership: reg,
		audit:     rec,
	}
}

var hundred = decimal.New(100, 0)

// Propose records a pending trade event. It never touches the
// ownership registry and checks structure only - sufficiency is
// validated at approval time against the registry as it is then.
func (s *tradeService) Propose(facilityID, seller, buyer string, amount, percentage decimal.Decimal) (*models.TradeEvent, error) {
	event := &models.TradeEvent{
		ID:         models.NewTradeID(),
		FacilityID: facilityID,
		Seller:     seller,
		Buyer:      buyer,
		Amount:     amount,
		Percentage: percentage,
		Status:     enum.TradePending,
		CreatedAt:  clock.Now(),
	}

	if err := event.Verify(); err != nil {
		return nil, lcerrors.MissingField.WithMsg(fmt.Sprintf("missing required fields: %v", err))
	}
	if !amount.IsPositive() {
		return nil, lcerrors.MissingField.WithMsg("amount is required")
	}
	if !percentage.IsPositive() {
		return nil, lcerrors.MissingField.WithMsg("percentage is required")
	}

	s.store.Lock()
	s.store.events = append(s.store.events, event)
	total := len(s.store.events)
	s.store.Unlock()

	log.Info("trade event recorded",
		"trade", event.ID,
		"facility", facilityID,
		"seller", seller,
		"buyer", buyer,
		"events", total,
	)

	out := *event
	return &out, nil
}

// Validate re-checks a proposal against the current registry state.
// It is advisory: approval runs the same checks again, since the
// registry may change between the two calls.
func (s *tradeService) Validate(facilityID, seller, buyer string, percentage decimal.Decimal) []string {
	failures := []string{}

	snap, err := s.ownership.Get(facilityID)
	if err != nil {
		failures = append(failures,
			fmt.Sprintf("facility %q does not exist in ownership registry", facilityID))
	} else {
		var sellerShare *decimal.Decimal
		for i := range snap.Owners {
			if snap.Owners[i].Name == seller {
				sellerShare = &snap.Owners[i].Share
				break
			}
		}
		if sellerShare == nil {
			failures = append(failures,
				fmt.Sprintf("seller %q is not an owner of facility %s", seller, facilityID))
		} else if sellerShare.LessThan(percentage) {
			failures = append(failures, fmt.Sprintf(
				"seller %q has insufficient ownership (%s%%) to transfer %s%%",
				seller, sellerShare.String(), percentage.String()))
		}
	}

	if buyer == "" {
		failures = append(failures, "buyer name cannot be empty")
	}

	if !percentage.IsPositive() {
		failures = append(failures, "percentage must be greater than 0")
	}
	if percentage.GreaterThan(hundred) {
		failures = append(failures, "percentage cannot exceed 100")
	}

	return failures
}

// Approve finalizes a pending trade: it re-validates against the
// live registry, executes the ownership transfer, stamps the
// approval time and fingerprint, and freezes the event. Approval is
// single-use - a second call for the same id is an error, not a
// no-op.
func (s *tradeService) Approve(tradeID string) (*models.TradeEvent, []models.OwnerShare, error) {
	// the store lock is held for the whole approval so concurrent
	// duplicate calls observe pending -> approved atomically
	s.store.Lock()
	defer s.store.Unlock()

	var event *models.TradeEvent
	for _, e := range s.store.events {
		if e.ID == tradeID {
			event = e
			break
		}
	}
	if event == nil {
		return nil, nil, lcerrors.TradeNotFound.WithMsg(
			fmt.Sprintf("trade event %q not found", tradeID))
	}

	if event.Approved() {
		return nil, nil, lcerrors.AlreadyApproved
	}

	// fresh validation against the registry as it is now; no trust
	// is placed in any prior Validate call
	owners, err := s.ownership.Transfer(event.FacilityID, event.Seller, event.Buyer, event.Percentage)
	if err != nil {
		return nil, nil, err
	}

	approvedAt := clock.Now()
	event.Status = enum.TradeApproved
	event.ApprovedAt = &approvedAt
	event.Fingerprint = s.audit.Fingerprint(*event)

	metrics.Core.TradeApproved()

	log.Info("trade approved",
		"trade", event.ID,
		"facility", event.FacilityID,
		"fingerprint", event.Fingerprint,
	)

	out := *event
	return &out, owners, nil
}

// List returns trade events newest first, optionally filtered by
// facility and/or status.
func (s *tradeService) List(facilityID string, status enum.TradeStatus) []models.TradeEvent {
	s.store.Lock()
	defer s.store.Unlock()

	// walk newest to oldest so timestamp ties keep reverse insertion order
	out := []models.TradeEvent{}
	for i := len(s.store.events) - 1; i >= 0; i-- {
		e := s.store.events[i]
		if facilityID != "" && e.FacilityID != facilityID {
			continue
		}
		if status != "" && e.Status != status {
			continue
		}
		out = append(out, *e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out
}

func (s *tradeService) GetByID(tradeID string) (*models.TradeEvent, error) {
	s.store.Lock()
	defer s.store.Unlock()

	for _, e := range s.store.events {
		if e.ID == tradeID {
			out := *e
			return &out, nil
		}
	}

	return nil, lcerrors.TradeNotFound.WithMsg(fmt.Sprintf("trade event %q not found", tradeID))
}
