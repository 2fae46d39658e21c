package waterfall

import (
	"testing"

	"github.com/clearlend/loanclear/lcerrors"
	"github.com/clearlend/loanclear/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type WaterfallTestSuite struct {
	suite.Suite
	srv WaterfallService
}

func TestWaterfallTestSuite(t *testing.T) {
	suite.Run(t, new(WaterfallTestSuite))
}

func (s *WaterfallTestSuite) SetupTest() {
	s.srv = Service()
}

func payee(name, share string) models.PayeeShare {
	return models.PayeeShare{
		SettlementTarget: models.SettlementTarget{
			Name:    name,
			BIC:     "TESTUS33XXX",
			Account: "ACCT-" + name,
		},
		Share: mustDecimal(share),
	}
}

func mustDecimal(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func (s *WaterfallTestSuite) TestCalculate() {
	payees := []models.PayeeShare{
		payee("Bank A", "0.4"),
		payee("Bank B", "0.6"),
	}

	dists, err := s.srv.Calculate(mustDecimal("1000000"), payees)
	require.Nil(s.T(), err)
	require.Len(s.T(), dists, 2)

	assert.True(s.T(), dists[0].Amount.Equal(mustDecimal("400000")))
	assert.True(s.T(), dists[1].Amount.Equal(mustDecimal("600000")))
	assert.Equal(s.T(), "Bank A", dists[0].Name)
	assert.Equal(s.T(), "TESTUS33XXX", dists[0].BIC)
	assert.Equal(s.T(), "ACCT-Bank A", dists[0].Account)
}

func (s *WaterfallTestSuite) TestExactSum() {
	// large totals with repeating-style shares still reconcile exactly
	payees := []models.PayeeShare{
		payee("Pacific Rim Traders", "0.333333"),
		payee("Sovereign Wealth I", "0.333333"),
		payee("Maritime Ventures", "0.333334"),
	}

	total := mustDecimal("10000000")
	dists, err := s.srv.Calculate(total, payees)
	require.Nil(s.T(), err)

	assert.True(s.T(), models.DistributionSum(dists).Equal(total),
		"distributed sum must equal the input total exactly")
}

func (s *WaterfallTestSuite) TestRemainderToLastPayee() {
	// shares sum to 0.9999 - within tolerance but short of one - so
	// the residual lands on the last payee in full
	payees := []models.PayeeShare{
		payee("Bank A", "0.3333"),
		payee("Bank B", "0.3333"),
		payee("Bank C", "0.3333"),
	}

	total := mustDecimal("100")
	dists, err := s.srv.Calculate(total, payees)
	require.Nil(s.T(), err)

	assert.True(s.T(), dists[0].Amount.Equal(mustDecimal("33.33")))
	assert.True(s.T(), dists[1].Amount.Equal(mustDecimal("33.33")))
	assert.True(s.T(), dists[2].Amount.Equal(mustDecimal("33.34")))
	assert.True(s.T(), models.DistributionSum(dists).Equal(total))
}

func (s *WaterfallTestSuite) TestSinglePayee() {
	dists, err := s.srv.Calculate(mustDecimal("123456.78"), []models.PayeeShare{payee("Bank A", "1")})
	require.Nil(s.T(), err)
	require.Len(s.T(), dists, 1)
	assert.True(s.T(), dists[0].Amount.Equal(mustDecimal("123456.78")))
}

func (s *WaterfallTestSuite) TestZeroTotal() {
	payees := []models.PayeeShare{
		payee("Bank A", "0.5"),
		payee("Bank B", "0.5"),
	}

	dists, err := s.srv.Calculate(decimal.Zero, payees)
	require.Nil(s.T(), err)
	assert.True(s.T(), dists[0].Amount.IsZero())
	assert.True(s.T(), dists[1].Amount.IsZero())
}

func (s *WaterfallTestSuite) TestEmptyOwnerSet() {
	_, err := s.srv.Calculate(mustDecimal("1000"), []models.PayeeShare{})
	require.NotNil(s.T(), err)
	assert.Equal(s.T(), lcerrors.EmptyOwnerSet.Code, err.(*lcerrors.Error).Code)
}

func (s *WaterfallTestSuite) TestNegativeTotal() {
	_, err := s.srv.Calculate(mustDecimal("-1"), []models.PayeeShare{payee("Bank A", "1")})
	require.NotNil(s.T(), err)
	assert.Equal(s.T(), lcerrors.InvalidRequestParam.Code, err.(*lcerrors.Error).Code)
}

func (s *WaterfallTestSuite) TestNegativeShare() {
	// a negative share hidden behind a compensating overweight one
	// still sums to 1.0 and must be rejected before any math runs
	payees := []models.PayeeShare{
		payee("Bank A", "1.5"),
		payee("Bank B", "-0.5"),
	}

	_, err := s.srv.Calculate(mustDecimal("1000"), payees)
	require.NotNil(s.T(), err)
	assert.Equal(s.T(), lcerrors.InvalidRequestParam.Code, err.(*lcerrors.Error).Code)
	assert.Contains(s.T(), err.Error(), "Bank B")
}

func (s *WaterfallTestSuite) TestShareSumMismatch() {
	payees := []models.PayeeShare{
		payee("Bank A", "0.5"),
		payee("Bank B", "0.47"),
	}

	_, err := s.srv.Calculate(mustDecimal("1000"), payees)
	require.NotNil(s.T(), err)
	assert.Equal(s.T(), lcerrors.ShareSumMismatch.Code, err.(*lcerrors.Error).Code)
	assert.Contains(s.T(), err.Error(), "0.97")
}

func (s *WaterfallTestSuite) TestShareSumWithinTolerance() {
	// up to 1e-4 off of one is accepted
	payees := []models.PayeeShare{
		payee("Bank A", "0.5"),
		payee("Bank B", "0.4999"),
	}

	total := mustDecimal("1000")
	dists, err := s.srv.Calculate(total, payees)
	require.Nil(s.T(), err)
	assert.True(s.T(), models.DistributionSum(dists).Equal(total))
}
