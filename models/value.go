package models

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies what a cell holds.
type Kind int

const (
	KindMissing Kind = iota
	KindText
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "missing"
	}
}

// MissingToken is how a missing cell is written out.
const MissingToken = "NA"

// Value is a single table cell. The zero Value is missing.
type Value struct {
	kind Kind
	text string
	num  float64
	flag bool
}

// Missing returns an empty cell.
func Missing() Value { return Value{} }

// Text returns a text cell.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Number returns a numeric cell. NaN and infinities become missing.
func Number(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Missing()
	}
	return Value{kind: KindNumber, num: f}
}

// Bool returns a two-level categorical cell.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// ParseRaw turns a raw CSV field into a cell, recognising the usual
// missing-value spellings of scraped exports.
func ParseRaw(field string) Value {
	s := strings.TrimSpace(field)
	switch strings.ToUpper(s) {
	case "", "NA", "N/A", "NAN":
		return Missing()
	}
	return Text(s)
}

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Str returns the text of a text cell.
func (v Value) Str() (string, bool) {
	if v.kind != KindText {
		return "", false
	}
	return v.text, true
}

// Float returns the number held by a numeric cell. Bool cells read as 1/0 so
// indicator columns can take part in correlations.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindBool:
		if v.flag {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// Flag returns the state of a bool cell.
func (v Value) Flag() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.flag, true
}

// String renders the cell the way it is written to CSV.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		if v.flag {
			return "TRUE"
		}
		return "FALSE"
	default:
		return MissingToken
	}
}
