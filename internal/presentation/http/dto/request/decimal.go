package request

import (
	"bytes"
	"encoding/json"
)

// DecimalText carries a number exactly as the client typed it. Both JSON
// strings and JSON numbers are accepted; parsing is left to the service so
// a bad value is reported against the field it came from.
type DecimalText string

func (d *DecimalText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = DecimalText(s)
		return nil
	}
	*d = DecimalText(data)
	return nil
}
