package entities

import (
	"testing"

	"github.com/clearlend/loanclear/lcerrors"
	"github.com/clearlend/loanclear/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type EntitiesTestSuite struct {
	suite.Suite
}

func TestEntitiesTestSuite(t *testing.T) {
	suite.Run(t, new(EntitiesTestSuite))
}

func (s *EntitiesTestSuite) TestTradeRequest() {
	req := TradeRequest{
		FacilityID: "loan-001",
		Seller:     "Bank A",
		Buyer:      "Bank C",
		Amount:     decimal.New(1000000, 0),
		Percentage: decimal.New(10, 0),
	}
	assert.Nil(s.T(), req.Verify())

	bad := req
	bad.Seller = ""
	err := bad.Verify()
	require.NotNil(s.T(), err)
	assert.Equal(s.T(), lcerrors.MissingField.Code, err.(*lcerrors.Error).Code)

	bad = req
	bad.Percentage = decimal.New(101, 0)
	err = bad.Verify()
	require.NotNil(s.T(), err)
	assert.Equal(s.T(), lcerrors.InvalidRequestParam.Code, err.(*lcerrors.Error).Code)

	bad = req
	bad.Amount = decimal.Zero
	assert.NotNil(s.T(), bad.Verify())
}

func (s *EntitiesTestSuite) TestSeedRequest() {
	req := SeedRequest{
		FacilityID: "loan-001",
		Owners: []models.OwnerShare{
			{Name: "Bank A", Share: decimal.New(40, 0)},
			{Name: "Bank B", Share: decimal.New(60, 0)},
		},
	}
	assert.Nil(s.T(), req.Verify())

	bad := req
	bad.FacilityID = ""
	assert.NotNil(s.T(), bad.Verify())

	bad = req
	bad.Owners = nil
	assert.NotNil(s.T(), bad.Verify())

	bad = req
	bad.Owners = []models.OwnerShare{{Share: decimal.New(100, 0)}}
	assert.NotNil(s.T(), bad.Verify())
}

func (s *EntitiesTestSuite) TestWaterfallRequest() {
	total := decimal.New(1000000, 0)
	req := WaterfallRequest{
		FacilityID: "loan-001",
		Total:      &total,
		Payees: []models.PayeeShare{
			{
				SettlementTarget: models.SettlementTarget{Name: "Bank A", BIC: "CHASUS33XXX", Account: "ACCT-001"},
				Share:            decimal.New(1, 0),
			},
		},
	}
	assert.Nil(s.T(), req.Verify())
	assert.Equal(s.T(), "application/pdf", req.MimeType)

	bad := req
	bad.Payees = nil
	err := bad.Verify()
	require.NotNil(s.T(), err)
	assert.Equal(s.T(), lcerrors.EmptyOwnerSet.Code, err.(*lcerrors.Error).Code)

	bad = req
	bad.Total = nil
	err = bad.Verify()
	require.NotNil(s.T(), err)
	assert.Equal(s.T(), lcerrors.MissingField.Code, err.(*lcerrors.Error).Code)

	bad = req
	bad.Base64Doc = "JVBERi0xLjQ="
	bad.Total = nil
	assert.Nil(s.T(), bad.Verify())

	negative := decimal.New(-1, 0)
	bad = req
	bad.Total = &negative
	assert.NotNil(s.T(), bad.Verify())

	bad = req
	bad.Payees = []models.PayeeShare{{Share: decimal.New(1, 0)}}
	assert.NotNil(s.T(), bad.Verify())

	bad = req
	bad.Payees = []models.PayeeShare{
		{
			SettlementTarget: models.SettlementTarget{Name: "Bank A", BIC: "CHASUS33XXX", Account: "ACCT-001"},
			Share:            decimal.New(-5, -1),
		},
	}
	err = bad.Verify()
	require.NotNil(s.T(), err)
	assert.Equal(s.T(), lcerrors.InvalidRequestParam.Code, err.(*lcerrors.Error).Code)
}

func (s *EntitiesTestSuite) TestParseRequest() {
	req := ParseRequest{Base64: "JVBERi0xLjQ="}
	assert.Nil(s.T(), req.Verify())
	assert.Equal(s.T(), "application/pdf", req.MimeType)

	bad := ParseRequest{}
	err := bad.Verify()
	require.NotNil(s.T(), err)
	assert.Equal(s.T(), lcerrors.MissingField.Code, err.(*lcerrors.Error).Code)
}
