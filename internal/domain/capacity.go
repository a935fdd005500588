package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Capacity is a multi-dimensional load vector (weight, volume, pallets, ...).
//
// A nil or empty Capacity is the zero vector of any dimension. Combining two
// non-empty vectors of different dimensionality is a caller bug and panics.
type Capacity []int

// ErrDimensionMismatch reports two non-empty capacity vectors of different dimensionality.
var ErrDimensionMismatch = errors.New("capacity dimension mismatch")

func NewCapacity(dims ...int) Capacity {
	c := make(Capacity, len(dims))
	copy(c, dims)
	return c
}

func (c Capacity) Dims() int { return len(c) }

// Compatible reports whether c and other can be combined without panicking.
func (c Capacity) Compatible(other Capacity) bool {
	return len(c) == 0 || len(other) == 0 || len(c) == len(other)
}

// Get returns the value of dimension i, zero when the vector is shorter.
func (c Capacity) Get(i int) int {
	if i < len(c) {
		return c[i]
	}
	return 0
}

func (c Capacity) Clone() Capacity {
	if c == nil {
		return nil
	}
	return NewCapacity(c...)
}

func (c Capacity) IsZero() bool {
	for _, v := range c {
		if v != 0 {
			return false
		}
	}
	return true
}

// Add returns c + other componentwise.
func (c Capacity) Add(other Capacity) Capacity {
	n := mustMatch(c, other)
	out := make(Capacity, n)
	for i := 0; i < n; i++ {
		out[i] = c.Get(i) + other.Get(i)
	}
	return out
}

// Subtract returns c - other componentwise.
func (c Capacity) Subtract(other Capacity) Capacity {
	n := mustMatch(c, other)
	out := make(Capacity, n)
	for i := 0; i < n; i++ {
		out[i] = c.Get(i) - other.Get(i)
	}
	return out
}

// Negate returns -c.
func (c Capacity) Negate() Capacity {
	return Capacity(nil).Subtract(c)
}

// LessOrEqual reports whether every component of c is <= the matching component of other.
func (c Capacity) LessOrEqual(other Capacity) bool {
	n := mustMatch(c, other)
	for i := 0; i < n; i++ {
		if c.Get(i) > other.Get(i) {
			return false
		}
	}
	return true
}

// GreaterOrEqual reports whether every component of c is >= the matching component of other.
func (c Capacity) GreaterOrEqual(other Capacity) bool {
	n := mustMatch(c, other)
	for i := 0; i < n; i++ {
		if c.Get(i) < other.Get(i) {
			return false
		}
	}
	return true
}

// Max returns the componentwise maximum.
func (c Capacity) Max(other Capacity) Capacity {
	n := mustMatch(c, other)
	out := make(Capacity, n)
	for i := 0; i < n; i++ {
		out[i] = max(c.Get(i), other.Get(i))
	}
	return out
}

// Min returns the componentwise minimum.
func (c Capacity) Min(other Capacity) Capacity {
	n := mustMatch(c, other)
	out := make(Capacity, n)
	for i := 0; i < n; i++ {
		out[i] = min(c.Get(i), other.Get(i))
	}
	return out
}

func (c Capacity) String() string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// ParseCapacity reads the String form ("[3,1]"); brackets are optional and
// an empty string yields an empty Capacity.
func ParseCapacity(s string) (Capacity, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if strings.TrimSpace(s) == "" {
		return Capacity{}, nil
	}
	parts := strings.Split(s, ",")
	c := make(Capacity, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("parse capacity %q: dimension %d: %w", s, i, err)
		}
		c[i] = v
	}
	return c, nil
}

func mustMatch(a, b Capacity) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if len(a) != len(b) {
		panic(fmt.Sprintf("capacity: dimension mismatch %d != %d", len(a), len(b)))
	}
	return len(a)
}
