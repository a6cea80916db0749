package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Number is a float request field that also accepts a numeric string, which is
// what HTML form inputs send ("1200"). An empty string decodes to zero so that
// `required` rejects it.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	text, err := numericText(data)
	if err != nil || text == "" {
		*n = 0
		return err
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("%q is not a number", text)
	}
	*n = Number(f)
	return nil
}

// Count is the integer counterpart of Number.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	text, err := numericText(data)
	if err != nil || text == "" {
		*c = 0
		return err
	}
	i, err := strconv.Atoi(text)
	if err != nil {
		return fmt.Errorf("%q is not a whole number", text)
	}
	*c = Count(i)
	return nil
}

// numericText returns the number literal or the trimmed content of a string.
func numericText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return "", nil
	}
	if data[0] != '"' {
		return string(data), nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}
