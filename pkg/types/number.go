package types

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// NumberKind tags the representation held by a Number.
type NumberKind int

const (
	IntKind NumberKind = iota
	FloatKind
)

func (k NumberKind) String() string {
	if k == FloatKind {
		return "float"
	}
	return "int"
}

// Number is an evaluation result: either an int64 or a float64.
// The zero value is integer 0.
type Number struct {
	kind NumberKind
	i    int64
	f    float64
}

func Int(v int64) Number { return Number{kind: IntKind, i: v} }

func Float(v float64) Number { return Number{kind: FloatKind, f: v} }

func (n Number) Kind() NumberKind { return n.kind }

func (n Number) IsInt() bool { return n.kind == IntKind }

// Int64 returns the integer value. For floats it truncates toward zero.
func (n Number) Int64() int64 {
	if n.kind == FloatKind {
		return int64(n.f)
	}
	return n.i
}

func (n Number) Float64() float64 {
	if n.kind == FloatKind {
		return n.f
	}
	return float64(n.i)
}

// IsZero reports whether the value is integer 0 or a float zero of either sign.
func (n Number) IsZero() bool {
	if n.kind == FloatKind {
		return n.f == 0
	}
	return n.i == 0
}

// String renders integers as plain digits and floats in shortest
// round-trip form, keeping a ".0" suffix on integral floats so 2 and 2.0
// stay distinguishable.
func (n Number) String() string {
	if n.kind == IntKind {
		return strconv.FormatInt(n.i, 10)
	}
	s := strconv.FormatFloat(n.f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}

// IsFinite reports whether the value is neither infinite nor NaN.
func (n Number) IsFinite() bool {
	if n.kind == IntKind {
		return true
	}
	return !math.IsInf(n.f, 0) && !math.IsNaN(n.f)
}

// MarshalJSON encodes finite values as JSON numbers. JSON has no
// infinities or NaN, so those are encoded as the strings "+Inf", "-Inf"
// and "NaN".
func (n Number) MarshalJSON() ([]byte, error) {
	if n.kind == IntKind {
		return json.Marshal(n.i)
	}
	if !n.IsFinite() {
		return json.Marshal(n.String())
	}
	return json.Marshal(n.f)
}
