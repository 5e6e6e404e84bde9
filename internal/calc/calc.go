// Package calc holds the expression state of a four-function calculator:
// one pending operation over two operands, with a display that mirrors the
// input being composed.
package calc

import (
	"strconv"
	"strings"
)

// DivideByZero is shown instead of a quotient when the divisor is zero.
const DivideByZero = "Infinity"

// Op is a pending binary operation.
type Op byte

const (
	OpNone Op = 0
	OpAdd  Op = '+'
	OpSub  Op = '-'
	OpMul  Op = '*'
	OpDiv  Op = '/'
)

func (o Op) String() string {
	if o == OpNone {
		return ""
	}
	return string(rune(o))
}

// ParseOp maps "+", "-", "*" and "/" to an Op.
func ParseOp(s string) (Op, bool) {
	if len(s) != 1 {
		return OpNone, false
	}
	switch op := Op(s[0]); op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return op, true
	}
	return OpNone, false
}

// Display receives the text to show every time the input changes.
type Display interface {
	Show(text string)
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(text string)

func (f DisplayFunc) Show(text string) { f(text) }

// State is a snapshot of the calculator.
type State struct {
	Input       string
	Previous    float64
	HasPrevious bool
	Op          Op
	Waiting     bool
}

// Calculator is not safe for concurrent use; each instance is driven by a
// single input loop.
type Calculator struct {
	display Display
	st      State
}

// New returns a cleared calculator and shows "0" on d. A nil d discards output.
func New(d Display) *Calculator {
	if d == nil {
		d = DisplayFunc(func(string) {})
	}
	c := &Calculator{display: d}
	c.Clear()
	return c
}

func (c *Calculator) State() State { return c.st }

// Input is the text currently on the display.
func (c *Calculator) Input() string { return c.st.Input }

// Append adds a digit or the decimal point to the number being composed.
// Anything else is ignored.
func (c *Calculator) Append(ch rune) {
	if ch != '.' && (ch < '0' || ch > '9') {
		return
	}
	s := string(ch)
	// The duplicate-point guard runs before the waiting check, so "."
	// right after a fractional result is dropped.
	if ch == '.' && strings.Contains(c.st.Input, ".") {
		return
	}
	switch {
	case c.st.Waiting:
		c.st.Input = s
		c.st.Waiting = false
	case c.st.Input == "0":
		c.st.Input = s
	default:
		c.st.Input += s
	}
	c.display.Show(c.st.Input)
}

// SetOperator records the current input as the left operand. Calling it
// again before entering an operand replaces both operator and operand.
func (c *Calculator) SetOperator(op Op) {
	if op == OpNone {
		return
	}
	c.st.Previous = parseNumber(c.st.Input)
	c.st.HasPrevious = true
	c.st.Op = op
	c.st.Waiting = true
}

// Compute applies the pending operation. Without one it does nothing.
func (c *Calculator) Compute() {
	if c.st.Op == OpNone || !c.st.HasPrevious {
		return
	}
	prev, cur := c.st.Previous, parseNumber(c.st.Input)
	var result string
	switch c.st.Op {
	case OpAdd:
		result = FormatNumber(prev + cur)
	case OpSub:
		result = FormatNumber(prev - cur)
	case OpMul:
		result = FormatNumber(prev * cur)
	case OpDiv:
		if cur == 0 {
			result = DivideByZero
		} else {
			result = FormatNumber(prev / cur)
		}
	default:
		return
	}
	c.st = State{Input: result, Waiting: true}
	c.display.Show(c.st.Input)
}

// Backspace drops the last character. It does nothing right after an
// operator or a result.
func (c *Calculator) Backspace() {
	if c.st.Waiting {
		return
	}
	if len(c.st.Input) > 1 {
		c.st.Input = c.st.Input[:len(c.st.Input)-1]
	} else {
		c.st.Input = "0"
	}
	c.display.Show(c.st.Input)
}

func (c *Calculator) Clear() {
	c.st = State{Input: "0"}
	c.display.Show(c.st.Input)
}

func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Partial literals like "12." parse fine; only garbage lands here.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f
		}
		return nan()
	}
	return f
}
