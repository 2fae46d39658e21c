// Package docai is the client for the document extraction service.
// The service is a black box that reads a base64 document and
// returns either a verified payment total or a structured trade
// proposal with a confidence score. It sits strictly upstream of
// the distribution and trade engines.
package docai

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/buger/jsonparser"
	"github.com/clearlend/loanclear/utils/env"
	"github.com/clearlend/loanclear/utils/log"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/valyala/fasthttp"
	try "gopkg.in/matryer/try.v1"
)

var (
	once sync.Once
	dc   *DocAIClient
)

const timeout = time.Minute

type DocAIClient struct {
	request func(req *fasthttp.Request, resp *fasthttp.Response) error
}

// TradeExtraction is the structured proposal the extraction service
// reads out of a notice of assignment.
type TradeExtraction struct {
	Seller     string          `json:"seller"`
	Buyer      string          `json:"buyer"`
	Amount     decimal.Decimal `json:"amount"`
	FacilityID string          `json:"facility_id"`
	Percentage decimal.Decimal `json:"percentage"`
	Confidence float64         `json:"confidence"`
	Model      string          `json:"model"`
}

func newClient() *DocAIClient {
	c := &DocAIClient{}
	c.request = func(req *fasthttp.Request, resp *fasthttp.Response) (err error) {
		req.Header.SetContentType("application/json")
		req.Header.Set("X-DocAI-Key", env.GetVar("DOCAI_API_KEY"))
		if err = try.Do(func(attempt int) (bool, error) {
			err = fasthttp.DoTimeout(req, resp, timeout)
			return err != nil, err
		}); err != nil {
			return
		}
		return
	}
	return c
}

func Client() *DocAIClient {
	once.Do(func() {
		dc = newClient()
		if dc == nil {
			log.Fatal("failed to start docai client")
		}
	})
	return dc
}

func (dc *DocAIClient) extract(task, model, mimeType, base64Doc string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)

	req.Header.SetMethod(fasthttp.MethodPost)
	req.SetRequestURI(env.GetVar("DOCAI_URL") + "/v1/extract")

	body, err := json.Marshal(map[string]interface{}{
		"task":      task,
		"model":     model,
		"mime_type": mimeType,
		"data":      base64Doc,
	})
	if err != nil {
		return nil, err
	}
	req.SetBody(body)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err = dc.request(req, resp); err != nil {
		return nil, err
	}

	if resp.StatusCode() >= fasthttp.StatusBadRequest {
		return nil, fmt.Errorf("docai returned status %v: %s", resp.StatusCode(), resp.Body())
	}

	out := make([]byte, len(resp.Body()))
	copy(out, resp.Body())
	return out, nil
}

// models returns the extraction model fallback chain, strongest
// preference first.
func modelChain() []string {
	return strings.Split(env.GetVar("DOCAI_MODELS"), ",")
}

// cleanNumeric strips the currency formatting the extraction service
// sometimes leaves in ($, commas, currency codes).
func cleanNumeric(raw string) string {
	cleaned := strings.NewReplacer("$", "", ",", "", "USD", "", "usd", "").Replace(raw)
	return strings.TrimSpace(cleaned)
}

// ExtractTotalPayment reads the total payment amount out of a
// payment advice document, falling back through the model chain
// until one of them yields a usable number.
func (dc *DocAIClient) ExtractTotalPayment(mimeType, base64Doc string) (decimal.Decimal, error) {
	var lastErr error

	for _, model := range modelChain() {
		body, err := dc.extract("payment_total", model, mimeType, base64Doc)
		if err != nil {
			log.Warn("docai payment extraction failed", "model", model, "error", err)
			lastErr = err
			continue
		}

		raw, err := jsonparser.GetString(body, "text")
		if err != nil {
			lastErr = errors.Wrap(err, "malformed docai response")
			continue
		}

		value, err := decimal.NewFromString(cleanNumeric(raw))
		if err != nil || !value.IsPositive() {
			lastErr = fmt.Errorf("invalid numeric value extracted: %q", raw)
			continue
		}

		log.Info("payment total extracted", "model", model, "total", value.String())
		return value, nil
	}

	return decimal.Zero, errors.Wrap(lastErr, "all extraction models failed")
}

// ExtractTrade reads a structured trade proposal out of a notice of
// assignment document.
func (dc *DocAIClient) ExtractTrade(mimeType, base64Doc string) (*TradeExtraction, error) {
	var lastErr error

	for _, model := range modelChain() {
		body, err := dc.extract("trade_assignment", model, mimeType, base64Doc)
		if err != nil {
			log.Warn("docai trade extraction failed", "model", model, "error", err)
			lastErr = err
			continue
		}

		ext, err := parseTradeExtraction(body)
		if err != nil {
			lastErr = err
			continue
		}

		ext.Model = model
		log.Info("trade extracted",
			"model", model,
			"facility", ext.FacilityID,
			"confidence", ext.Confidence,
		)
		return ext, nil
	}

	return nil, errors.Wrap(lastErr, "all extraction models failed")
}

func parseTradeExtraction(body []byte) (*TradeExtraction, error) {
	ext := &TradeExtraction{}

	var err error
	if ext.Seller, err = jsonparser.GetString(body, "seller"); err != nil {
		return nil, errors.Wrap(err, "docai response missing seller")
	}
	if ext.Buyer, err = jsonparser.GetString(body, "buyer"); err != nil {
		return nil, errors.Wrap(err, "docai response missing buyer")
	}
	if ext.FacilityID, err = jsonparser.GetString(body, "facility_id"); err != nil {
		return nil, errors.Wrap(err, "docai response missing facility_id")
	}

	rawAmount, err := jsonparser.GetString(body, "amount")
	if err != nil {
		return nil, errors.Wrap(err, "docai response missing amount")
	}
	if ext.Amount, err = decimal.NewFromString(cleanNumeric(rawAmount)); err != nil {
		return nil, fmt.Errorf("invalid amount extracted: %q", rawAmount)
	}

	rawPct, err := jsonparser.GetString(body, "percentage")
	if err != nil {
		return nil, errors.Wrap(err, "docai response missing percentage")
	}
	if ext.Percentage, err = decimal.NewFromString(cleanNumeric(rawPct)); err != nil {
		return nil, fmt.Errorf("invalid percentage extracted: %q", rawPct)
	}

	if ext.Confidence, err = jsonparser.GetFloat(body, "confidence"); err != nil {
		// older deployments omit the score; treat as unscored
		ext.Confidence = 0
	}

	return ext, nil
}
