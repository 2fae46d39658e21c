package paycsv

import (
	"strings"
	"testing"

	"github.com/clearlend/loanclear/lcerrors"
	"github.com/clearlend/loanclear/models"
	"github.com/clearlend/loanclear/utils/env"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type PayCSVTestSuite struct {
	suite.Suite
}

func TestPayCSVTestSuite(t *testing.T) {
	suite.Run(t, new(PayCSVTestSuite))
}

func (s *PayCSVTestSuite) SetupSuite() {
	env.RegisterDefault("PAYMENT_CURRENCY", "USD")
}

func mustDecimal(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func (s *PayCSVTestSuite) TestRender() {
	dists := []models.Distribution{
		{Name: "Bank A", BIC: "CHASUS33XXX", Account: "ACCT-001", Amount: mustDecimal("400000")},
		{Name: "Bank B", BIC: "DEUTDEFFXXX", Account: "ACCT-002", Amount: mustDecimal("600000.5")},
	}

	out, err := Render(dists)
	require.Nil(s.T(), err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(s.T(), lines, 3)

	assert.Equal(s.T(), "Bank Name,BIC Code,Currency,Account Number,Amount", strings.TrimSpace(lines[0]))
	assert.Equal(s.T(), "Bank A,CHASUS33XXX,USD,ACCT-001,400000.00", strings.TrimSpace(lines[1]))
	assert.Equal(s.T(), "Bank B,DEUTDEFFXXX,USD,ACCT-002,600000.50", strings.TrimSpace(lines[2]))
}

func (s *PayCSVTestSuite) TestRenderEmpty() {
	out, err := Render([]models.Distribution{})
	require.Nil(s.T(), err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(s.T(), lines, 1, "header only")
}

func (s *PayCSVTestSuite) TestVerifyIntegrity() {
	dists := []models.Distribution{
		{Name: "Bank A", BIC: "CHASUS33XXX", Account: "ACCT-001", Amount: mustDecimal("33.333333")},
		{Name: "Bank B", BIC: "DEUTDEFFXXX", Account: "ACCT-002", Amount: mustDecimal("33.333333")},
		{Name: "Bank C", BIC: "BNPAFRPPXXX", Account: "ACCT-003", Amount: mustDecimal("33.333334")},
	}

	out, err := Render(dists)
	require.Nil(s.T(), err)

	// the 2-decimal output rounds to 33.33 x3 = 99.99, within one
	// minor unit of the true total
	assert.Nil(s.T(), VerifyIntegrity(out, mustDecimal("100")))
}

func (s *PayCSVTestSuite) TestVerifyIntegrityFailure() {
	dists := []models.Distribution{
		{Name: "Bank A", BIC: "CHASUS33XXX", Account: "ACCT-001", Amount: mustDecimal("400000")},
	}

	out, err := Render(dists)
	require.Nil(s.T(), err)

	err = VerifyIntegrity(out, mustDecimal("500000"))
	require.NotNil(s.T(), err)
	assert.True(s.T(), lcerrors.IsIntegrityViolation(err))

	err = VerifyIntegrity(strings.Replace(out, "400000.00", "not-a-number", 1), mustDecimal("400000"))
	require.NotNil(s.T(), err)
	assert.Equal(s.T(), lcerrors.InternalServerError.Code, err.(*lcerrors.Error).Code)
}
