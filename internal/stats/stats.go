// Package stats provides the attribute and resource-pool value types shared by
// every character in the dungeon.
package stats

import "fmt"

// Attr identifies a single character attribute.
type Attr int

const (
	Str Attr = iota
	Dex
	Int
	End
	Vit
	Wis
)

// AllAttrs lists every attribute in display order.
var AllAttrs = [...]Attr{Str, Dex, Int, End, Vit, Wis}

// String returns the short attribute key used in data files and console text.
func (a Attr) String() string {
	switch a {
	case Str:
		return "str"
	case Dex:
		return "dex"
	case Int:
		return "int"
	case End:
		return "end"
	case Vit:
		return "vit"
	case Wis:
		return "wis"
	default:
		return "unknown"
	}
}

// ParseAttr converts a short attribute key back to an Attr.
func ParseAttr(s string) (Attr, error) {
	for _, a := range AllAttrs {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown attribute %q", s)
}

// Attributes holds the six core attributes of a character.
type Attributes struct {
	Str int `json:"str" yaml:"str"`
	Dex int `json:"dex" yaml:"dex"`
	Int int `json:"int" yaml:"int"`
	End int `json:"end" yaml:"end"`
	Vit int `json:"vit" yaml:"vit"`
	Wis int `json:"wis" yaml:"wis"`
}

// Get returns the value of a single attribute.
func (a Attributes) Get(attr Attr) int {
	switch attr {
	case Str:
		return a.Str
	case Dex:
		return a.Dex
	case Int:
		return a.Int
	case End:
		return a.End
	case Vit:
		return a.Vit
	case Wis:
		return a.Wis
	default:
		return 0
	}
}

// Set overwrites a single attribute.
func (a *Attributes) Set(attr Attr, v int) {
	switch attr {
	case Str:
		a.Str = v
	case Dex:
		a.Dex = v
	case Int:
		a.Int = v
	case End:
		a.End = v
	case Vit:
		a.Vit = v
	case Wis:
		a.Wis = v
	}
}

// Add returns the element-wise sum of two attribute sets.
func (a Attributes) Add(o Attributes) Attributes {
	return Attributes{
		Str: a.Str + o.Str,
		Dex: a.Dex + o.Dex,
		Int: a.Int + o.Int,
		End: a.End + o.End,
		Vit: a.Vit + o.Vit,
		Wis: a.Wis + o.Wis,
	}
}

// Sub returns the element-wise difference of two attribute sets.
func (a Attributes) Sub(o Attributes) Attributes {
	return a.Add(o.Neg())
}

// Neg returns the attribute set with every value negated.
func (a Attributes) Neg() Attributes {
	return Attributes{Str: -a.Str, Dex: -a.Dex, Int: -a.Int, End: -a.End, Vit: -a.Vit, Wis: -a.Wis}
}

// IsZero reports whether every attribute is zero.
func (a Attributes) IsZero() bool {
	return a == Attributes{}
}

// Meets reports whether a satisfies every minimum in req.
func (a Attributes) Meets(req Attributes) bool {
	for _, attr := range AllAttrs {
		if a.Get(attr) < req.Get(attr) {
			return false
		}
	}
	return true
}

// Pool is a clamped [current, max] resource such as HP or MP.
type Pool struct {
	Cur int `json:"cur"`
	Max int `json:"max"`
}

// Full returns a pool filled to max.
func Full(max int) Pool {
	return Pool{Cur: max, Max: max}
}

// Add increases the current value, capped at Max. Returns the amount applied.
func (p *Pool) Add(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if p.Cur+actual > p.Max {
		actual = p.Max - p.Cur
	}
	if actual < 0 {
		actual = 0
	}
	p.Cur += actual
	return actual
}

// Sub decreases the current value, floored at zero. Returns the amount applied.
func (p *Pool) Sub(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := amount
	if actual > p.Cur {
		actual = p.Cur
	}
	p.Cur -= actual
	return actual
}

// SetMax changes the maximum and clamps the current value into range.
func (p *Pool) SetMax(max int) {
	if max < 0 {
		max = 0
	}
	p.Max = max
	if p.Cur > p.Max {
		p.Cur = p.Max
	}
}

// IsFull reports whether the pool is at max.
func (p Pool) IsFull() bool {
	return p.Cur >= p.Max
}

// IsEmpty reports whether the pool is drained.
func (p Pool) IsEmpty() bool {
	return p.Cur <= 0
}
