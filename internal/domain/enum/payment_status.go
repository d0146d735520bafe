package enum

import (
	"encoding/json"
	"fmt"
)

// PaymentStatus tells whether the customer paid on delivery or is billed later.
type PaymentStatus int

const (
	PaymentStatusInvoice PaymentStatus = 0
	PaymentStatusPaid    PaymentStatus = 1
)

func (s PaymentStatus) String() string {
	switch s {
	case PaymentStatusInvoice:
		return "invoice"
	case PaymentStatusPaid:
		return "paid"
	}
	return fmt.Sprintf("PaymentStatus(%d)", int(s))
}

// Label is the wording printed on tickets.
func (s PaymentStatus) Label() string {
	if s == PaymentStatusPaid {
		return "Paid"
	}
	return "Invoice - Bill Later"
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = PaymentStatus(i)
		return nil
	}
	switch str {
	case "", "invoice":
		*s = PaymentStatusInvoice
	case "paid":
		*s = PaymentStatusPaid
	default:
		return fmt.Errorf("unknown payment status %q", str)
	}
	return nil
}

// PaymentMethod is how a paid invoice was settled.
type PaymentMethod string

const (
	PaymentMethodNone  PaymentMethod = ""
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodCheck PaymentMethod = "check"
	PaymentMethodCard  PaymentMethod = "card"
)

// Valid reports whether m is one of the accepted methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodNone, PaymentMethodCash, PaymentMethodCheck, PaymentMethodCard:
		return true
	}
	return false
}
