package utils

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexFloat decodes a JSON number or numeric string. Anything else decodes to 0
// instead of failing the whole document.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	v, _ := LooseFloat(data)
	*f = FlexFloat(v)
	return nil
}

// FlexInt is the integer counterpart of FlexFloat; fractions are truncated.
type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	v, _ := LooseFloat(data)
	*i = FlexInt(int(v))
	return nil
}

// FlexString decodes a JSON string or number into its text form. Numeric ids
// keep their literal spelling ("42", not "42.000000").
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	v, _ := LooseString(data)
	*s = FlexString(v)
	return nil
}

// LooseFloat reads a number or a numeric string. ok is false for null, missing,
// non-numeric or non-finite values ("NaN", "Inf").
func LooseFloat(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		v, err := n.Float64()
		return finite(v, err == nil)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return finite(v, err == nil)
	}
	return 0, false
}

func finite(v float64, ok bool) (float64, bool) {
	if !ok || IsNonFinite(v) {
		return 0, false
	}
	return v, true
}

// IsNonFinite reports whether v is NaN or an infinity, neither of which
// encoding/json can write.
func IsNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// LooseString reads a string, or the literal text of a number.
func LooseString(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	return "", false
}

// LooseBool reads a boolean; ok is false for anything else.
func LooseBool(raw json.RawMessage) (bool, bool) {
	var b bool
	if err := json.Unmarshal(bytes.TrimSpace(raw), &b); err != nil {
		return false, false
	}
	return b, true
}
