package enum

import (
	"encoding/json"
	"fmt"
)

// InvoiceStatus is the lifecycle state of an invoice. The only transition is
// draft to completed.
type InvoiceStatus int

const (
	InvoiceStatusDraft     InvoiceStatus = 0
	InvoiceStatusCompleted InvoiceStatus = 1
)

func (s InvoiceStatus) String() string {
	switch s {
	case InvoiceStatusDraft:
		return "draft"
	case InvoiceStatusCompleted:
		return "completed"
	}
	return fmt.Sprintf("InvoiceStatus(%d)", int(s))
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	switch str {
	case "", "draft":
		*s = InvoiceStatusDraft
	case "completed":
		*s = InvoiceStatusCompleted
	default:
		return fmt.Errorf("unknown invoice status %q", str)
	}
	return nil
}
