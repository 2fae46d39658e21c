package ownership

import (
	"fmt"
	"sort"
	"sync"

	"github.com/clearlend/loanclear/lcerrors"
	"github.com/clearlend/loanclear/metrics"
	"github.com/clearlend/loanclear/models"
	"github.com/clearlend/loanclear/utils/log"
	"github.com/clearlend/loanclear/utils/money"
	"github.com/shopspring/decimal"
)

// OwnershipService is the authoritative registry of facility
// ownership. Reads return deep-copied snapshots; Transfer is the
// only mutation besides the administrative Seed/Reset, and it is
// serialized per facility.
type OwnershipService interface {
	Get(facilityID string) (*models.FacilityOwnership, error)
	List() []*models.FacilityOwnership
	Seed(facilityID string, owners []models.OwnerShare) (*models.FacilityOwnership, error)
	Reset()
	Transfer(facilityID, seller, buyer string, percentage decimal.Decimal) ([]models.OwnerShare, error)
}

type facility struct {
	sync.Mutex
	owners []models.OwnerShare
}

type ownershipService struct {
	mu         sync.RWMutex
	facilities map[string]*facility
}

var (
	global *ownershipService
	once   sync.Once
)

// Service returns the process-wide ownership registry.
func Service() OwnershipService {
	once.Do(func() {
		global = NewService()
	})
	return global
}

// NewService builds an empty registry. Exposed for tests that need
// isolated state.
func NewService() *ownershipService {
	return &ownershipService{facilities: map[string]*facility{}}
}

// copyOwners detaches an owner list from the registry's backing
// array. Share values are replaced on mutation, never modified in
// place, so an element copy is a full deep copy.
func copyOwners(owners []models.OwnerShare) []models.OwnerShare {
	out := make([]models.OwnerShare, len(owners))
	copy(out, owners)
	return out
}

func (s *ownershipService) snapshot(facilityID string, f *facility) *models.FacilityOwnership {
	owners := copyOwners(f.owners)
	return &models.FacilityOwnership{
		FacilityID: facilityID,
		Owners:     owners,
		Total:      money.RoundShare(models.ShareSum(owners)),
	}
}

func (s *ownershipService) Get(facilityID string) (*models.FacilityOwnership, error) {
	s.mu.RLock()
	f, ok := s.facilities[facilityID]
	s.mu.RUnlock()

	if !ok {
		return nil, lcerrors.FacilityNotFound.WithMsg(
			fmt.Sprintf("facility %q not found in ownership registry", facilityID))
	}

	f.Lock()
	defer f.Unlock()

	return s.snapshot(facilityID, f), nil
}

func (s *ownershipService) List() []*models.FacilityOwnership {
	s.mu.RLock()
	ids := make([]string, 0, len(s.facilities))
	for id := range s.facilities {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	sort.Strings(ids)

	out := make([]*models.FacilityOwnership, 0, len(ids))
	for _, id := range ids {
		if snap, err := s.Get(id); err == nil {
			out = append(out, snap)
		}
	}
	return out
}

// Seed replaces the entire owner list for a facility. Only
// structural well-formedness is checked - operators may seed
// partial states intentionally during setup.
func (s *ownershipService) Seed(facilityID string, owners []models.OwnerShare) (*models.FacilityOwnership, error) {
	if facilityID == "" {
		return nil, lcerrors.InvalidRequestParam.WithMsg("facility_id is required")
	}
	for _, o := range owners {
		if err := o.Verify(); err != nil {
			return nil, lcerrors.InvalidRequestParam.WithMsg(
				fmt.Sprintf("each owner requires a name and a numeric share: %v", err))
		}
	}

	seeded := copyOwners(owners)

	s.mu.Lock()
	f, ok := s.facilities[facilityID]
	if !ok {
		f = &facility{}
		s.facilities[facilityID] = f
	}
	s.mu.Unlock()

	f.Lock()
	f.owners = seeded
	snap := s.snapshot(facilityID, f)
	f.Unlock()

	log.Info("ownership seeded", "facility", facilityID, "owners", len(seeded))

	return snap, nil
}

// Reset drops every facility from the registry. Administrative only.
func (s *ownershipService) Reset() {
	s.mu.Lock()
	s.facilities = map[string]*facility{}
	s.mu.Unlock()

	log.Info("ownership registry cleared")
}

// Transfer moves percentage points of ownership from seller to buyer
// on one facility. It is invoked only by trade approval, never
// directly by external callers. The whole mutation happens under the
// facility lock, and either applies completely or not at all.
func (s *ownershipService) Transfer(facilityID, seller, buyer string, percentage decimal.Decimal) ([]models.OwnerShare, error) {
	s.mu.RLock()
	f, ok := s.facilities[facilityID]
	s.mu.RUnlock()

	if !ok {
		return nil, lcerrors.FacilityNotFound.WithMsg(
			fmt.Sprintf("facility %q not found in ownership registry", facilityID))
	}

	f.Lock()
	defer f.Unlock()

	sellerIdx := -1
	for i := range f.owners {
		if f.owners[i].Name == seller {
			sellerIdx = i
			break
		}
	}
	if sellerIdx == -1 {
		return nil, lcerrors.SellerNotFound.WithMsg(
			fmt.Sprintf("seller %q is not a current owner of facility %q", seller, facilityID))
	}

	if f.owners[sellerIdx].Share.LessThan(percentage) {
		return nil, lcerrors.InsufficientOwnership.WithMsg(fmt.Sprintf(
			"seller %q has insufficient ownership (%s%% < %s%%)",
			seller, f.owners[sellerIdx].Share.String(), percentage.String()))
	}

	sumBefore := models.ShareSum(f.owners)

	// work on a copy so a failed invariant check leaves the
	// registry untouched
	next := copyOwners(f.owners)

	next[sellerIdx].Share = money.RoundShare(next[sellerIdx].Share.Sub(percentage))

	buyerIdx := -1
	for i := range next {
		if next[i].Name == buyer {
			buyerIdx = i
			break
		}
	}
	if buyerIdx == -1 {
		next = append(next, models.OwnerShare{Name: buyer, Share: money.RoundShare(percentage)})
	} else {
		next[buyerIdx].Share = money.RoundShare(next[buyerIdx].Share.Add(percentage))
	}

	// an owner with zero share is not a distinct entity
	if next[sellerIdx].Share.IsZero() {
		next = append(next[:sellerIdx], next[sellerIdx+1:]...)
	}

	// transfer only moves share between two parties; the facility
	// total must be conserved within the 4-decimal rounding tolerance
	sumAfter := models.ShareSum(next)
	if drift := sumAfter.Sub(sumBefore).Abs(); drift.GreaterThan(models.ShareSumTolerance) {
		metrics.Core.ShareSumDrift()
		log.Error("share sum drifted beyond tolerance",
			"facility", facilityID,
			"before", sumBefore.String(),
			"after", sumAfter.String(),
			"drift", drift.String(),
		)
		return nil, lcerrors.ShareSumDrift.WithError(
			fmt.Errorf("facility %v share sum %v -> %v", facilityID, sumBefore, sumAfter))
	}

	f.owners = next

	return copyOwners(f.owners), nil
}
