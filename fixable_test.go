package neurograph_test

import (
	"testing"

	ng "github.com/sharnoff/neurograph"
)

func TestFixableZeroValue(t *testing.T) {
	var c ng.Fixable[float64]

	if c.Fixed() {
		t.Fatalf("zero-value cell reports fixed")
	}
	if s := c.State(); s != ng.Unfixed {
		t.Fatalf("zero-value state is %v, expected %v", s, ng.Unfixed)
	}
	if v := c.Get(); v != 0 {
		t.Fatalf("zero-value cell holds %v, expected 0", v)
	}
}

func TestFixableSet(t *testing.T) {
	var c ng.Fixable[int]

	if err := c.Set(3, false); err != nil {
		t.Fatalf("set on unfixed cell failed: %v", err)
	}
	if v := c.Get(); v != 3 {
		t.Fatalf("cell holds %d, expected 3", v)
	}
	if c.Fixed() {
		t.Fatalf("plain set fixed the cell")
	}
}

func TestFixableSoft(t *testing.T) {
	var c ng.Fixable[int]
	c.Set(1, false)
	c.Fix(ng.Soft)

	if s := c.State(); s != ng.Soft {
		t.Fatalf("state is %v, expected %v", s, ng.Soft)
	}

	if err := c.Set(2, false); err == nil {
		t.Fatalf("set on soft-fixed cell succeeded without override")
	} else if _, ok := err.(ng.InvariantError); !ok {
		t.Fatalf("set on soft-fixed cell returned %T, expected InvariantError", err)
	}
	if v := c.Get(); v != 1 {
		t.Fatalf("failed set changed the cell to %d", v)
	}

	if err := c.Set(2, true); err != nil {
		t.Fatalf("overriding set on soft-fixed cell failed: %v", err)
	}
	if v := c.Get(); v != 2 {
		t.Fatalf("cell holds %d, expected 2", v)
	}
}

func TestFixableHard(t *testing.T) {
	var c ng.Fixable[int]
	if err := c.FixValue(7, false, ng.Hard); err != nil {
		t.Fatalf("hard fix failed: %v", err)
	}

	if err := c.Set(8, true); err == nil {
		t.Fatalf("set on hard-fixed cell succeeded")
	} else if _, ok := err.(ng.InvariantError); !ok {
		t.Fatalf("set on hard-fixed cell returned %T, expected InvariantError", err)
	}

	// resetting leaves a hard-fixed cell alone
	c.Reset(0)
	if s := c.State(); s != ng.Hard {
		t.Fatalf("reset lowered a hard fix to %v", s)
	}
	if v := c.Get(); v != 7 {
		t.Fatalf("reset changed a hard-fixed cell to %d", v)
	}

	// fixing never lowers the state
	c.Fix(ng.Soft)
	if s := c.State(); s != ng.Hard {
		t.Fatalf("fix lowered the state to %v", s)
	}
}

func TestFixableReset(t *testing.T) {
	var c ng.Fixable[int]
	c.FixValue(5, false, ng.Soft)

	c.Reset(-1)
	if c.Fixed() {
		t.Fatalf("reset left the cell fixed")
	}
	if v := c.Get(); v != -1 {
		t.Fatalf("reset cell holds %d, expected the default -1", v)
	}
}

func TestFixationString(t *testing.T) {
	tcs := []struct {
		f    ng.Fixation
		want string
	}{
		{ng.Unfixed, "unfixed"},
		{ng.Soft, "soft"},
		{ng.Hard, "hard"},
		{ng.Fixation(42), "invalid"},
	}

	for _, tc := range tcs {
		if got := tc.f.String(); got != tc.want {
			t.Errorf("Fixation(%d).String() == %q, expected %q", tc.f, got, tc.want)
		}
	}
}
