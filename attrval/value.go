package attrval

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Value is a fixed-length vector of signed 32-bit integers.
type Value struct {
	data []int32
}

// Zero constructs a Value of the given width, all components zero.
func Zero(width int) Value {
	if width < 0 {
		panic(fmt.Errorf("%w: width %d", ErrIndexOutOfRange, width))
	}
	return Value{data: make([]int32, width)}
}

// New constructs a Value from an explicit list of components.
func New(values ...int32) Value {
	data := make([]int32, len(values))
	copy(data, values)
	return Value{data: data}
}

// Width returns the number of components.
func (v Value) Width() int {
	return len(v.data)
}

// Get returns the component at index i. Panics if i is out of range.
func (v Value) Get(i int) int32 {
	if i < 0 || i >= len(v.data) {
		panic(fmt.Errorf("%w: index %d not in [0,%d)", ErrIndexOutOfRange, i, len(v.data)))
	}
	return v.data[i]
}

// Set returns a copy of v with component i replaced by value. Panics if i is
// out of range.
func (v Value) Set(i int, value int32) Value {
	if i < 0 || i >= len(v.data) {
		panic(fmt.Errorf("%w: index %d not in [0,%d)", ErrIndexOutOfRange, i, len(v.data)))
	}
	out := v.clone()
	out.data[i] = value
	return out
}

func (v Value) clone() Value {
	data := make([]int32, len(v.data))
	copy(data, v.data)
	return Value{data: data}
}

// Add returns the elementwise sum of v and other. Panics on width mismatch.
func (v Value) Add(other Value) Value {
	v.requireSameWidth(other)
	out := make([]int32, len(v.data))
	for i := range out {
		out[i] = v.data[i] + other.data[i]
	}
	return Value{data: out}
}

// Sub returns the elementwise difference v - other. Panics on width mismatch.
func (v Value) Sub(other Value) Value {
	v.requireSameWidth(other)
	out := make([]int32, len(v.data))
	for i := range out {
		out[i] = v.data[i] - other.data[i]
	}
	return Value{data: out}
}

// Scale returns v with every component multiplied by scalar.
func (v Value) Scale(scalar int32) Value {
	out := make([]int32, len(v.data))
	for i := range out {
		out[i] = v.data[i] * scalar
	}
	return Value{data: out}
}

func (v Value) requireSameWidth(other Value) {
	if len(v.data) != len(other.data) {
		panic(fmt.Errorf("%w: %d vs %d", ErrWidthMismatch, len(v.data), len(other.data)))
	}
}

// Length returns the Manhattan (L1) norm of v.
func (v Value) Length() int {
	sum := 0
	for _, x := range v.data {
		if x < 0 {
			sum += int(-x)
		} else {
			sum += int(x)
		}
	}
	return sum
}

// Equal reports elementwise equality.
func (v Value) Equal(other Value) bool {
	if len(v.data) != len(other.data) {
		return false
	}
	for i := range v.data {
		if v.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// CompareTo implements the total order: first by width, then lexicographic
// over components. Returns <0, 0, >0.
func (v Value) CompareTo(other Value) int {
	if len(v.data) != len(other.data) {
		return len(v.data) - len(other.data)
	}
	for i := range v.data {
		if v.data[i] != other.data[i] {
			if v.data[i] < other.data[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Key returns a canonical string encoding, suitable for use as a map key
// (Go maps can't use Value directly since it's backed by a slice).
func (v Value) Key() string {
	var b strings.Builder
	for i, x := range v.data {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(int64(x), 10))
	}
	return b.String()
}

// String renders v as "(a, b, c)".
func (v Value) String() string {
	parts := make([]string, len(v.data))
	for i, x := range v.data {
		parts[i] = fmt.Sprintf("%d", x)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// MarshalJSON encodes v as a plain JSON array of its components.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.data == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.data)
}

// UnmarshalJSON decodes a plain JSON array into v's components.
func (v *Value) UnmarshalJSON(data []byte) error {
	var vals []int32
	if err := json.Unmarshal(data, &vals); err != nil {
		return fmt.Errorf("attrval: decode value: %w", err)
	}
	v.data = vals
	return nil
}
