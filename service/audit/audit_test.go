package audit

import (
	"testing"
	"time"

	"github.com/clearlend/loanclear/models"
	"github.com/clearlend/loanclear/models/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type AuditTestSuite struct {
	suite.Suite
	srv AuditService
}

func TestAuditTestSuite(t *testing.T) {
	suite.Run(t, new(AuditTestSuite))
}

func (s *AuditTestSuite) SetupTest() {
	s.srv = Service()
}

func (s *AuditTestSuite) trade() models.TradeEvent {
	approvedAt := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	return models.TradeEvent{
		ID:         "TRD-1717245000000-A1B2C3D4E",
		FacilityID: "loan-001",
		Seller:     "Bank A",
		Buyer:      "Bank C",
		Amount:     decimal.New(1000000, 0),
		Percentage: decimal.New(15, 0),
		Status:     enum.TradeApproved,
		CreatedAt:  approvedAt.Add(-time.Minute),
		ApprovedAt: &approvedAt,
	}
}

func (s *AuditTestSuite) TestDeterminism() {
	t := s.trade()

	first := s.srv.Fingerprint(t)
	assert.Len(s.T(), first, 64)

	for i := 0; i < 100; i++ {
		assert.Equal(s.T(), first, s.srv.Fingerprint(t))
	}
}

func (s *AuditTestSuite) TestFieldSensitivity() {
	base := s.srv.Fingerprint(s.trade())

	t := s.trade()
	t.Amount = decimal.New(1000001, 0)
	assert.NotEqual(s.T(), base, s.srv.Fingerprint(t))

	t = s.trade()
	t.Seller = "Bank B"
	assert.NotEqual(s.T(), base, s.srv.Fingerprint(t))

	t = s.trade()
	t.Status = enum.TradePending
	assert.NotEqual(s.T(), base, s.srv.Fingerprint(t))

	t = s.trade()
	t.ApprovedAt = nil
	assert.NotEqual(s.T(), base, s.srv.Fingerprint(t))

	// non-semantic fields never affect the digest
	t = s.trade()
	t.CreatedAt = t.CreatedAt.Add(time.Hour)
	t.Fingerprint = "whatever"
	assert.Equal(s.T(), base, s.srv.Fingerprint(t))
}

func (s *AuditTestSuite) TestDecimalRepresentation() {
	base := s.srv.Fingerprint(s.trade())

	// 15 vs 15.0 vs 1.5e1 hash identically
	t := s.trade()
	t.Percentage = decimal.New(150, -1)
	assert.Equal(s.T(), base, s.srv.Fingerprint(t))

	t = s.trade()
	t.Percentage = decimal.New(15000, -3)
	assert.Equal(s.T(), base, s.srv.Fingerprint(t))
}

func (s *AuditTestSuite) TestVerify() {
	t := s.trade()
	assert.False(s.T(), s.srv.Verify(t), "no stored fingerprint")

	t.Fingerprint = s.srv.Fingerprint(t)
	assert.True(s.T(), s.srv.Verify(t))

	t.Amount = decimal.New(42, 0)
	assert.False(s.T(), s.srv.Verify(t), "tampered field must break verification")
}
