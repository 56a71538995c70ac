package model

import (
	"fmt"

	"q.log/gomory/rational"
)

// Kind tags the role a tableau column plays.
type Kind int

const (
	Regular Kind = iota
	Slack
	Artificial
)

func (k Kind) String() string {
	switch k {
	case Regular:
		return "x"
	case Slack:
		return "s"
	case Artificial:
		return "a"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Variable is one column of the cost row, or the occupant of a basis row.
// ID is the identity used to match basis entries against cost-row entries;
// Name is for display.
type Variable struct {
	ID   int
	Kind Kind
	Coef rational.Rational
	Name string
}

// NewVariable names the variable after its kind and 1-based number, e.g. s2.
func NewVariable(id int, kind Kind, number int, coef rational.Rational) Variable {
	return Variable{
		ID:   id,
		Kind: kind,
		Coef: coef,
		Name: fmt.Sprintf("%v%d", kind, number),
	}
}

// WithCoef returns a copy of v carrying a different cost coefficient.
func (v Variable) WithCoef(coef rational.Rational) Variable {
	v.Coef = coef
	return v
}

func (v Variable) String() string {
	return v.Name
}
