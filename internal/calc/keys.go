package calc

import (
	"strings"
	"unicode/utf8"
)

// Action is what a keypad button does.
type Action string

const (
	ActionDigit     Action = "digit"
	ActionDecimal   Action = "decimal"
	ActionOperator  Action = "operator"
	ActionEquals    Action = "equals"
	ActionClear     Action = "clear"
	ActionBackspace Action = "backspace"
)

// Button is one key of the on-screen keypad.
type Button struct {
	Label  string
	Action Action
	Value  string
}

func digit(d string) Button { return Button{Label: d, Action: ActionDigit, Value: d} }
func operator(label, v string) Button {
	return Button{Label: label, Action: ActionOperator, Value: v}
}

// Keypad is the on-screen button layout, row by row.
var Keypad = [][]Button{
	{{Label: "C", Action: ActionClear}, {Label: "⌫", Action: ActionBackspace}, operator("÷", "/"), operator("×", "*")},
	{digit("7"), digit("8"), digit("9"), operator("−", "-")},
	{digit("4"), digit("5"), digit("6"), operator("+", "+")},
	{digit("1"), digit("2"), digit("3"), {Label: "=", Action: ActionEquals}},
	{digit("0"), {Label: ".", Action: ActionDecimal, Value: "."}},
}

// Click dispatches a keypad button.
func (c *Calculator) Click(b Button) {
	switch b.Action {
	case ActionDigit, ActionDecimal:
		for _, r := range b.Value {
			c.Append(r)
		}
	case ActionOperator:
		if op, ok := ParseOp(b.Value); ok {
			c.SetOperator(op)
		}
	case ActionEquals:
		c.Compute()
	case ActionClear:
		c.Clear()
	case ActionBackspace:
		c.Backspace()
	}
}

// Press dispatches a keyboard key, named the way Bubble Tea names them
// ("enter", "backspace", "delete", or the typed character). It reports
// whether the key belongs to the calculator.
func (c *Calculator) Press(key string) bool {
	switch key {
	case "enter", "=":
		c.Compute()
		return true
	case "backspace":
		c.Backspace()
		return true
	case "delete", "c", "C":
		c.Clear()
		return true
	}
	if op, ok := ParseOp(key); ok {
		c.SetOperator(op)
		return true
	}
	if len(key) == 1 && (key[0] == '.' || (key[0] >= '0' && key[0] <= '9')) {
		c.Append(rune(key[0]))
		return true
	}
	return false
}

// Keys splits a typed sequence such as "12+3{backspace}4=" into key names.
// Named keys go in braces; every other character is its own key.
func Keys(seq string) []string {
	var out []string
	for len(seq) > 0 {
		if seq[0] == '{' {
			if end := strings.IndexByte(seq, '}'); end > 1 {
				out = append(out, strings.ToLower(seq[1:end]))
				seq = seq[end+1:]
				continue
			}
		}
		// Invalid bytes come through one at a time so Press rejects them.
		r, size := utf8.DecodeRuneInString(seq)
		if r != ' ' {
			out = append(out, seq[:size])
		}
		seq = seq[size:]
	}
	return out
}
