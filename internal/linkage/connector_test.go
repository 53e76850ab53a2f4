package linkage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func conn(s string, pri Priority, limit int) *Connector {
	return &Connector{String: s, Priority: pri, LengthLimit: limit}
}

func TestEasyMatch(t *testing.T) {
	cases := []struct {
		s, t string
		want bool
	}{
		{"S", "S", true},
		{"S", "O", false},
		{"SX", "SX", true},
		{"SX", "S", false},
		{"Sa", "Sa", true},
		{"Sa", "Sb", false},
		{"Sa", "S*", true},
		{"S*", "Sa", true},
		{"Sa", "S", true},
		{"S", "Sab", true},
		{"S^", "S*", true},
		{"S^", "S^", false},
		{"Sab", "Sax", false},
		{"Sab", "Sa", true},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, EasyMatch(c.s, c.t), "EasyMatch(%q, %q)", c.s, c.t)
	}
}

func TestMatchAgreesWithEasyMatchOnThin(t *testing.T) {
	strs := []string{"S", "Sa", "S*", "S^", "Sab", "SXa", "O"}
	for _, s := range strs {
		for _, u := range strs {
			a := conn(s, ThinPriority, UnlimitedLen)
			b := conn(u, ThinPriority, UnlimitedLen)
			assert.Equal(t, EasyMatch(s, u), Match(a, b, 0, 1),
				"Match(%q, %q)", s, u)
		}
	}
}

func TestMatchThinSymmetry(t *testing.T) {
	strs := []string{"S", "Sa", "S*", "S^", "Sab"}
	for _, s := range strs {
		for _, u := range strs {
			a := conn(s, ThinPriority, UnlimitedLen)
			b := conn(u, ThinPriority, UnlimitedLen)
			assert.Equal(t, Match(a, b, 0, 1), Match(b, a, 0, 1),
				"symmetry of %q vs %q", s, u)
		}
	}
}

func TestMatchLabel(t *testing.T) {
	a := conn("S", ThinPriority, UnlimitedLen)
	b := conn("S", ThinPriority, UnlimitedLen)
	b.Label = 3
	assert.False(t, Match(a, b, 0, 1))
	a.Label = 3
	assert.True(t, Match(a, b, 0, 1))
}

func TestMatchLengthLimit(t *testing.T) {
	a := conn("S", ThinPriority, 1)
	b := conn("S", ThinPriority, UnlimitedLen)
	assert.True(t, Match(a, b, 0, 1))
	assert.False(t, Match(a, b, 0, 2))
	// The limit binds on either side.
	a.LengthLimit = UnlimitedLen
	b.LengthLimit = 1
	assert.False(t, Match(a, b, 0, 2))
}

func TestMatchPriorities(t *testing.T) {
	cases := []struct {
		s    string
		sp   Priority
		t    string
		tp   Priority
		want bool
	}{
		// Up matches down when the down string is no stronger.
		{"Sa", UpPriority, "Sa", DownPriority, true},
		{"S*", UpPriority, "Sx", DownPriority, true},
		{"Sx", UpPriority, "S*", DownPriority, false},
		{"Sx", UpPriority, "S^", DownPriority, true},
		// Mirror image.
		{"Sx", DownPriority, "S*", UpPriority, true},
		{"S^", DownPriority, "Sx", UpPriority, true},
		{"S*", DownPriority, "Sx", UpPriority, false},
		// Incompatible pairs.
		{"Sa", ThinPriority, "Sa", UpPriority, false},
		{"Sa", UpPriority, "Sa", UpPriority, false},
		{"Sa", DownPriority, "Sa", DownPriority, false},
		{"Sa", DownPriority, "Sa", ThinPriority, false},
	}
	for _, c := range cases {
		a := conn(c.s, c.sp, UnlimitedLen)
		b := conn(c.t, c.tp, UnlimitedLen)
		assert.Equal(t, c.want, Match(a, b, 0, 1),
			"%q(%d) vs %q(%d)", c.s, c.sp, c.t, c.tp)
	}
}

func TestLabelCompatibleNeverRejectsMatch(t *testing.T) {
	strs := []string{"S", "Sa", "S*", "SXa", "SX", "O"}
	for _, s := range strs {
		for _, u := range strs {
			a := conn(s, ThinPriority, UnlimitedLen)
			b := conn(u, ThinPriority, UnlimitedLen)
			if Match(a, b, 0, 1) {
				assert.True(t, LabelCompatible(a, b),
					"cheap check rejected matchable %q vs %q", s, u)
			}
		}
	}
}
