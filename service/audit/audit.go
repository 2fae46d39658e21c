package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/clearlend/loanclear/models"
	"github.com/clearlend/loanclear/utils/log"
)

// AuditService produces the tamper-evident fingerprint stored on a
// finalized trade. The digest covers only the trade's semantic
// fields, so the same approved trade always yields the same
// fingerprint and any later edit to those fields is detectable.
type AuditService interface {
	Fingerprint(t models.TradeEvent) string
	Verify(t models.TradeEvent) bool
}

type auditService struct {
	AuditService
}

func Service() AuditService {
	return &auditService{}
}

// canonical is the fixed-order serialization hashed into the
// fingerprint. Decimals render via String() so a value hashes the
// same regardless of internal exponent representation.
type canonical struct {
	ID         string `json:"id"`
	FacilityID string `json:"facility_id"`
	Seller     string `json:"seller"`
	Buyer      string `json:"buyer"`
	Amount     string `json:"amount"`
	Percentage string `json:"percentage"`
	Status     string `json:"status"`
	ApprovedAt string `json:"approved_at"`
}

func (s *auditService) Fingerprint(t models.TradeEvent) string {
	var approvedAt string
	if t.ApprovedAt != nil {
		approvedAt = t.ApprovedAt.UTC().Format(time.RFC3339Nano)
	}

	buf, err := json.Marshal(canonical{
		ID:         t.ID,
		FacilityID: t.FacilityID,
		Seller:     t.Seller,
		Buyer:      t.Buyer,
		Amount:     t.Amount.String(),
		Percentage: t.Percentage.String(),
		Status:     string(t.Status),
		ApprovedAt: approvedAt,
	})
	if err != nil {
		// canonical contains only strings; this cannot fail
		log.Panic("trade fingerprint serialization failed", "error", err)
	}

	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:])
}

// Verify recomputes the fingerprint from the trade's semantic fields
// and compares it to the stored one.
func (s *auditService) Verify(t models.TradeEvent) bool {
	return t.Fingerprint != "" && s.Fingerprint(t) == t.Fingerprint
}
