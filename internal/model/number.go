package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Number is a non-negative integer the backend stores as a decimal string.
// It encodes as a JSON string and decodes from either a string or a number.
type Number int

func (n Number) String() string {
	return strconv.Itoa(int(n))
}

// ParseNumber parses the digits typed into a form field.
func ParseNumber(s string) (Number, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("ParseNumber: %w", err)
	}
	return Number(v), nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*n = 0
			return nil
		}
		v, err := ParseNumber(s)
		if err != nil {
			return err
		}
		*n = v
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("Number: %w", err)
	}
	*n = Number(f)
	return nil
}
