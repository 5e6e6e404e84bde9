package calc

import (
	"strings"
	"testing"
)

type recorder struct{ shown []string }

func (r *recorder) Show(text string) { r.shown = append(r.shown, text) }

func (r *recorder) last() string {
	if len(r.shown) == 0 {
		return ""
	}
	return r.shown[len(r.shown)-1]
}

func press(t *testing.T, c *Calculator, seq string) {
	t.Helper()
	for _, k := range Keys(seq) {
		if !c.Press(k) {
			t.Fatalf("key %q was not handled", k)
		}
	}
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name string
		keys string
		want string
	}{
		{"addition", "12+3=", "15"},
		{"divide by zero", "5/0=", "Infinity"},
		{"zero divided by zero", "0/0=", "Infinity"},
		{"negative divided by zero", "0-5=/0=", "Infinity"},
		{"subtraction below zero", "3-10=", "-7"},
		{"multiplication", "2.5*4=", "10"},
		{"float noise kept", "0.1+0.2=", "0.30000000000000004"},
		{"point after operator dropped while input has one", ".1+.2=", "2.1"},
		{"leading zero replaced", "007", "7"},
		{"operator replaced before operand", "5+*3=", "15"},
		{"operator without equals does not chain", "12+3+4=", "7"},
		{"result starts fresh", "2+2=9", "9"},
		{"operate on infinity", "5/0=+1=", "Infinity"},
		{"trailing point", "12.", "12."},
		{"trailing point computes", "12.+1=", "13"},
		{"backspace", "123{backspace}", "12"},
		{"clear", "123c", "0"},
		{"clear with delete", "9+{delete}", "0"},
		{"large product", "100000000000*100000000000=", "1e+22"},
		{"small quotient", "1/10000000=", "1e-7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{}
			c := New(r)
			press(t, c, tt.keys)
			if c.Input() != tt.want {
				t.Errorf("input = %q, want %q", c.Input(), tt.want)
			}
			if r.last() != tt.want {
				t.Errorf("display = %q, want %q", r.last(), tt.want)
			}
		})
	}
}

func TestAtMostOneDecimalPoint(t *testing.T) {
	for _, seq := range []string{"1.2.3", "..5.", "0.0.0.", "3..", "1+2.5.5="} {
		c := New(nil)
		press(t, c, seq)
		if n := strings.Count(c.Input(), "."); n > 1 {
			t.Errorf("%q: input %q has %d decimal points", seq, c.Input(), n)
		}
	}
}

func TestDecimalAfterFractionalResultIsDropped(t *testing.T) {
	c := New(nil)
	press(t, c, "3/2=")
	if c.Input() != "1.5" {
		t.Fatalf("expected 1.5, got %q", c.Input())
	}
	press(t, c, ".")
	if c.Input() != "1.5" || !c.State().Waiting {
		t.Fatalf("expected point ignored while result shown, got %+v", c.State())
	}
	press(t, c, "4")
	if c.Input() != "4" {
		t.Errorf("expected digit to replace result, got %q", c.Input())
	}
}

func TestClearThenBackspaceYieldsZero(t *testing.T) {
	c := New(nil)
	press(t, c, "987.6")
	c.Clear()
	for i := 0; i < 5; i++ {
		c.Backspace()
		if c.Input() != "0" {
			t.Fatalf("after %d backspaces got %q", i+1, c.Input())
		}
	}
}

func TestComputeWithoutOperatorIsNoop(t *testing.T) {
	r := &recorder{}
	c := New(r)
	press(t, c, "42")
	before := c.State()
	shown := len(r.shown)

	c.Compute()

	if c.State() != before {
		t.Errorf("state changed: %+v -> %+v", before, c.State())
	}
	if len(r.shown) != shown {
		t.Errorf("display updated on no-op compute")
	}
}

func TestBackspaceIgnoredWhileWaiting(t *testing.T) {
	c := New(nil)
	press(t, c, "12+")
	c.Backspace()
	if c.Input() != "12" {
		t.Errorf("expected operand kept, got %q", c.Input())
	}
	press(t, c, "3=")
	c.Backspace()
	if c.Input() != "15" {
		t.Errorf("expected result kept, got %q", c.Input())
	}
}

func TestSetOperatorState(t *testing.T) {
	c := New(nil)
	press(t, c, "8")
	c.SetOperator(OpSub)
	st := c.State()
	if !st.HasPrevious || st.Previous != 8 || st.Op != OpSub || !st.Waiting {
		t.Fatalf("unexpected state %+v", st)
	}
	c.Compute()
	st = c.State()
	if st.HasPrevious || st.Op != OpNone || !st.Waiting || st.Input != "0" {
		t.Errorf("unexpected state after compute %+v", st)
	}
}

func TestPressIgnoresUnknownKeys(t *testing.T) {
	c := New(nil)
	for _, k := range []string{"x", "esc", "%", "up"} {
		if c.Press(k) {
			t.Errorf("key %q should not be handled", k)
		}
	}
	if c.Input() != "0" {
		t.Errorf("expected untouched input, got %q", c.Input())
	}
}

func TestClickKeypad(t *testing.T) {
	c := New(nil)
	find := func(label string) Button {
		for _, row := range Keypad {
			for _, b := range row {
				if b.Label == label {
					return b
				}
			}
		}
		t.Fatalf("no button %q", label)
		return Button{}
	}
	for _, l := range []string{"7", ".", "5", "×", "2", "="} {
		c.Click(find(l))
	}
	if c.Input() != "15" {
		t.Fatalf("expected 15, got %q", c.Input())
	}
	c.Click(find("C"))
	if c.Input() != "0" {
		t.Errorf("expected clear, got %q", c.Input())
	}
}

func TestKeys(t *testing.T) {
	tests := []struct {
		seq  string
		want []string
	}{
		{"1 2{Backspace}+={enter}", []string{"1", "2", "backspace", "+", "=", "enter"}},
		{"1\xff", []string{"1", "\xff"}},
		{"\xff", []string{"\xff"}},
		{"\xe2\x88", []string{"\xe2", "\x88"}},
		{"÷2", []string{"÷", "2"}},
		{"{", []string{"{"}},
	}
	for _, tt := range tests {
		got := Keys(tt.seq)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("Keys(%q) = %q, want %q", tt.seq, got, tt.want)
		}
	}
}

func TestInvalidKeyIsRejected(t *testing.T) {
	c := New(nil)
	for _, k := range Keys("7\xff") {
		c.Press(k)
	}
	if c.Press("\xff") {
		t.Error("invalid byte should not be a calculator key")
	}
	if c.Input() != "7" {
		t.Errorf("input = %q, want 7", c.Input())
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{15, "15"},
		{-0.5, "-0.5"},
		{1e21, "1e+21"},
		{123456789012345680000, "123456789012345680000"},
		{0.000001, "0.000001"},
		{1.5e-7, "1.5e-7"},
		{-2.5e25, "-2.5e+25"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
