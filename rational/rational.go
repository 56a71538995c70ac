// Package rational provides the exact fraction type used by every tableau
// computation. A Rational never changes after construction, so slices of
// Rational can be copied by value without aliasing concerns.
package rational

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

var (
	// ErrDivisionByZero is returned by Div when the divisor is zero.
	ErrDivisionByZero = errors.New("rational: division by zero")

	// ErrSyntax is returned by Parse for malformed input.
	ErrSyntax = errors.New("rational: invalid syntax")

	// ErrNotFinite is returned by FromFloat for NaN or ±Inf.
	ErrNotFinite = errors.New("rational: value is not finite")
)

// Rational is an exact signed fraction. The zero value is 0.
type Rational struct {
	r *big.Rat
}

var (
	Zero = Rational{}
	One  = New(1)
)

// New returns n/1.
func New(n int64) Rational {
	return Rational{r: new(big.Rat).SetInt64(n)}
}

// Frac returns num/den. It panics if den is zero.
func Frac(num, den int64) Rational {
	if den == 0 {
		panic(ErrDivisionByZero)
	}
	return Rational{r: big.NewRat(num, den)}
}

// FromBig returns a copy of x as a Rational.
func FromBig(x *big.Rat) Rational {
	return Rational{r: new(big.Rat).Set(x)}
}

// Parse reads integers ("3"), fractions ("-3/4") and decimals ("1.25", "1e3").
func Parse(s string) (Rational, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Zero, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	return Rational{r: r}, nil
}

// FromFloat converts f through its shortest decimal representation, so 0.1
// becomes 1/10 rather than the exact binary value.
func FromFloat(f float64) (Rational, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Zero, fmt.Errorf("%w: %v", ErrNotFinite, f)
	}
	return Parse(strconv.FormatFloat(f, 'g', -1, 64))
}

func (x Rational) rat() *big.Rat {
	if x.r == nil {
		return new(big.Rat)
	}
	return x.r
}

func (x Rational) Add(y Rational) Rational {
	return Rational{r: new(big.Rat).Add(x.rat(), y.rat())}
}

func (x Rational) Sub(y Rational) Rational {
	return Rational{r: new(big.Rat).Sub(x.rat(), y.rat())}
}

func (x Rational) Mul(y Rational) Rational {
	return Rational{r: new(big.Rat).Mul(x.rat(), y.rat())}
}

// Div returns x/y, or ErrDivisionByZero.
func (x Rational) Div(y Rational) (Rational, error) {
	if y.IsZero() {
		return Zero, ErrDivisionByZero
	}
	return Rational{r: new(big.Rat).Quo(x.rat(), y.rat())}, nil
}

// MustDiv is Div for callers that guarantee a non-zero divisor.
func (x Rational) MustDiv(y Rational) Rational {
	q, err := x.Div(y)
	if err != nil {
		panic(err)
	}
	return q
}

func (x Rational) Neg() Rational {
	return Rational{r: new(big.Rat).Neg(x.rat())}
}

func (x Rational) Abs() Rational {
	return Rational{r: new(big.Rat).Abs(x.rat())}
}

// Floor returns the greatest integer not above x.
func (x Rational) Floor() Rational {
	r := x.rat()
	// big.Int.Div is Euclidean; with a positive denominator that is floor.
	q := new(big.Int).Div(r.Num(), r.Denom())
	return Rational{r: new(big.Rat).SetInt(q)}
}

// FracPart returns x - floor(x), which lies in [0, 1).
func (x Rational) FracPart() Rational {
	return x.Sub(x.Floor())
}

func (x Rational) Sign() int { return x.rat().Sign() }

func (x Rational) IsZero() bool { return x.Sign() == 0 }

func (x Rational) IsOne() bool { return x.Equal(One) }

func (x Rational) IsInteger() bool { return x.rat().IsInt() }

// Cmp returns -1, 0 or +1 as x is less than, equal to, or greater than y.
func (x Rational) Cmp(y Rational) int { return x.rat().Cmp(y.rat()) }

func (x Rational) Equal(y Rational) bool { return x.Cmp(y) == 0 }

func (x Rational) Less(y Rational) bool { return x.Cmp(y) < 0 }

// Big returns a copy of the underlying value.
func (x Rational) Big() *big.Rat { return new(big.Rat).Set(x.rat()) }

// Float64 is an approximation for display; never use it for decisions.
func (x Rational) Float64() float64 {
	f, _ := x.rat().Float64()
	return f
}

// String renders integers without a denominator, e.g. "2", "-3/4".
func (x Rational) String() string { return x.rat().RatString() }

func (x Rational) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

func (x *Rational) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}
