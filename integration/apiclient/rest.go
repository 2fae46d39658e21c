package apiclient

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/clearlend/loanclear/models"
	"github.com/clearlend/loanclear/models/enum"
	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
)

type ApiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *ApiError) Error() string {
	return e.Message
}

// RestClient drives the clearing API over HTTP for the integration
// suite. Administrative calls carry an operator token signed with
// the given secret.
type RestClient struct {
	baseUrl     string
	adminSecret string
	client      *fasthttp.Client
}

func NewRestClient(adminSecret string) *RestClient {
	return &RestClient{
		baseUrl:     "http://localhost:5996",
		adminSecret: adminSecret,
		client:      &fasthttp.Client{},
	}
}

func (c *RestClient) SetBaseURL(url string) *RestClient {
	c.baseUrl = url
	return c
}

type Heartbeat struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type TradeResponse struct {
	Trade     models.TradeEvent  `json:"trade"`
	Ownership []models.OwnerShare `json:"ownership"`
}

type ValidationResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

type TradeListResponse struct {
	Count  int                `json:"count"`
	Events []models.TradeEvent `json:"events"`
}

type OwnershipListResponse struct {
	Facilities []models.FacilityOwnership `json:"facilities"`
}

type WaterfallRequest struct {
	FacilityID string              `json:"facility_id"`
	Total      *decimal.Decimal    `json:"total,omitempty"`
	Base64Doc  string              `json:"base64_doc,omitempty"`
	MimeType   string              `json:"mime_type,omitempty"`
	Payees     []models.PayeeShare `json:"owners"`
}

type WaterfallResponse struct {
	FacilityID   string                `json:"facility_id"`
	TotalCashIn  decimal.Decimal       `json:"total_cash_in"`
	Distribution []models.Distribution `json:"distribution"`
	CSV          string                `json:"csv"`
	Elapsed      float64               `json:"elapsed"`
}

type TradeRequest struct {
	FacilityID string          `json:"facility_id"`
	Seller     string          `json:"seller"`
	Buyer      string          `json:"buyer"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

type SeedRequest struct {
	Owners []models.OwnerShare `json:"owners"`
}

func (c *RestClient) GetHeartbeat() (res *Heartbeat, err error) {
	url := fmt.Sprintf("%s/loanclear/heartbeat", c.baseUrl)
	err = c.call(url, "GET", false, nil, &res)
	return
}

func (c *RestClient) GetOwnership(facilityID string) (res *models.FacilityOwnership, err error) {
	url := fmt.Sprintf("%s/loanclear/api/v1/ownership/%s", c.baseUrl, facilityID)
	err = c.call(url, "GET", false, nil, &res)
	return
}

func (c *RestClient) ListOwnership() (res *OwnershipListResponse, err error) {
	url := fmt.Sprintf("%s/loanclear/api/v1/ownership", c.baseUrl)
	err = c.call(url, "GET", false, nil, &res)
	return
}

func (c *RestClient) SeedOwnership(facilityID string, owners []models.OwnerShare) (res *models.FacilityOwnership, err error) {
	url := fmt.Sprintf("%s/loanclear/api/v1/ownership/%s", c.baseUrl, facilityID)
	err = c.call(url, "POST", true, &SeedRequest{Owners: owners}, &res)
	return
}

func (c *RestClient) ResetOwnership() error {
	url := fmt.Sprintf("%s/loanclear/api/v1/ownership", c.baseUrl)
	return c.call(url, "DELETE", true, nil, nil)
}

func (c *RestClient) ProposeTrade(req *TradeRequest) (res *TradeResponse, err error) {
	url := fmt.Sprintf("%s/loanclear/api/v1/trades", c.baseUrl)
	err = c.call(url, "POST", false, req, &res)
	return
}

func (c *RestClient) ValidateTrade(req *TradeRequest) (res *ValidationResponse, err error) {
	url := fmt.Sprintf("%s/loanclear/api/v1/trades/validate", c.baseUrl)
	err = c.call(url, "POST", false, req, &res)
	return
}

func (c *RestClient) ApproveTrade(tradeID string) (res *TradeResponse, err error) {
	url := fmt.Sprintf("%s/loanclear/api/v1/trades/%s/approve", c.baseUrl, tradeID)
	err = c.call(url, "POST", false, nil, &res)
	return
}

func (c *RestClient) ListTrades(facilityID string, status enum.TradeStatus) (res *TradeListResponse, err error) {
	url := fmt.Sprintf("%s/loanclear/api/v1/trades?facility_id=%s&status=%s", c.baseUrl, facilityID, status)
	err = c.call(url, "GET", false, nil, &res)
	return
}

func (c *RestClient) Waterfall(req *WaterfallRequest) (res *WaterfallResponse, err error) {
	url := fmt.Sprintf("%s/loanclear/api/v1/waterfall", c.baseUrl)
	err = c.call(url, "POST", false, req, &res)
	return
}

// adminToken mints an operator token the way the deployment tooling
// does: HS256 over {sub: <operator uuid>, iss: loanclear}.
func (c *RestClient) adminToken() (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.Must(uuid.NewV4()).String(),
		"iss": "loanclear",
		"iat": time.Now().Unix(),
	})
	return token.SignedString([]byte(c.adminSecret))
}

func (c *RestClient) call(uri, method string, admin bool, reqBody, resBody interface{}) error {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)

	req.SetRequestURI(uri)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")

	if admin {
		token, err := c.adminToken()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if method != "GET" && reqBody != nil {
		reqBytes, err := json.Marshal(reqBody)
		if err != nil {
			return err
		}
		req.SetBody(reqBytes)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := c.client.Do(req, resp); err != nil {
		return err
	}

	if resp.StatusCode() >= fasthttp.StatusMultipleChoices {
		apiErr := ApiError{}
		if err := json.Unmarshal(resp.Body(), &apiErr); err != nil {
			return fmt.Errorf("request failed with status %v", resp.StatusCode())
		}
		return &apiErr
	}

	if resBody == nil {
		return nil
	}

	return json.Unmarshal(resp.Body(), resBody)
}
