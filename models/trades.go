package models

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/clearlend/loanclear/models/enum"
	"github.com/clearlend/loanclear/utils/clock"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

var (
	// InstanceID identifies this loanclear instance for tracking
	InstanceID string
)

func init() {
	var u uuid.UUID
	var err error
	if u, err = uuid.DefaultGenerator.NewV4(); err != nil {
		panic(err)
	}
	InstanceID = u.String()
}

// TradeEvent records a proposed or executed transfer of share from
// a seller to a buyer on a facility. Once approved it is immutable.
type TradeEvent struct {
	ID          string           `json:"id"`
	FacilityID  string           `json:"facility_id"`
	Seller      string           `json:"seller"`
	Buyer       string           `json:"buyer"`
	Amount      decimal.Decimal  `json:"amount"`
	Percentage  decimal.Decimal  `json:"percentage"`
	Status      enum.TradeStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	ApprovedAt  *time.Time       `json:"approved_at,omitempty"`
	Fingerprint string           `json:"fingerprint,omitempty"`
}

// Verify checks structural validity of a proposal. Ownership
// sufficiency is not checked here - that is the lifecycle's job
// against the live registry.
func (t *TradeEvent) Verify() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.FacilityID, validation.Required),
		validation.Field(&t.Seller, validation.Required),
		validation.Field(&t.Buyer, validation.Required),
	)
}

// Approved reports whether the trade reached its terminal state.
func (t *TradeEvent) Approved() bool {
	return t.Status == enum.TradeApproved
}

const tradeIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewTradeID generates an identifier in the form
// TRD-<unix millis>-<9 random base36 chars>.
func NewTradeID() string {
	var sb strings.Builder
	sb.WriteString("TRD-")
	sb.WriteString(strconv.FormatInt(clock.Now().UnixNano()/int64(time.Millisecond), 10))
	sb.WriteString("-")
	for i := 0; i < 9; i++ {
		sb.WriteByte(tradeIDAlphabet[rand.Intn(len(tradeIDAlphabet))])
	}
	return sb.String()
}
