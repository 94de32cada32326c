package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidQuantity = errors.New("quantity must be a JSON string or number")

// Quantity is a free-form ingredient amount. It keeps the JSON value it was
// decoded from, so "2", 2 and 2.5 survive a round trip unchanged.
type Quantity struct {
	raw json.RawMessage
}

func TextQuantity(s string) Quantity {
	b, _ := json.Marshal(s)
	return Quantity{raw: b}
}

func NumberQuantity(f float64) Quantity {
	return Quantity{raw: json.RawMessage(strconv.FormatFloat(f, 'f', -1, 64))}
}

// ParseQuantity accepts the raw JSON form of a quantity.
func ParseQuantity(raw []byte) (Quantity, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Quantity{}, ErrInvalidQuantity
	}
	switch c := raw[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Quantity{}, fmt.Errorf("%w: %v", ErrInvalidQuantity, err)
		}
	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return Quantity{}, fmt.Errorf("%w: %v", ErrInvalidQuantity, err)
		}
	default:
		return Quantity{}, ErrInvalidQuantity
	}
	return Quantity{raw: append(json.RawMessage(nil), raw...)}, nil
}

func (q Quantity) IsNumber() bool {
	return len(q.raw) > 0 && q.raw[0] != '"'
}

// String renders the quantity as text. Strings come back unquoted. Integer
// literals stay as written; any other number is printed in its shortest
// decimal form with at least one fractional digit, so 2.50 is "2.5" and
// 1e2 is "100.0".
func (q Quantity) String() string {
	if len(q.raw) == 0 {
		return ""
	}
	if q.raw[0] == '"' {
		var s string
		_ = json.Unmarshal(q.raw, &s)
		return s
	}
	if !bytes.ContainsAny(q.raw, ".eE") {
		return string(q.raw)
	}
	f, err := strconv.ParseFloat(string(q.raw), 64)
	if err != nil {
		return string(q.raw)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Plus joins two amounts of the same ingredient. The result is always text:
// "2" plus "1 cup" becomes "2, plus 1 cup".
func (q Quantity) Plus(next Quantity) Quantity {
	return TextQuantity(q.String() + ", plus " + next.String())
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	if len(q.raw) == 0 {
		return []byte(`""`), nil
	}
	return q.raw, nil
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	parsed, err := ParseQuantity(data)
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}
