package game

import "testing"

func TestExpToLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int64
	}{
		{level: 1, want: 100},
		{level: 2, want: 282},
		{level: 3, want: 519},
		{level: 4, want: 800},
		{level: 10, want: 3162},
	}
	for _, tt := range tests {
		if got := ExpToLevel(tt.level); got != tt.want {
			t.Errorf("ExpToLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestApplyExp(t *testing.T) {
	tests := []struct {
		name       string
		level      int
		exp        int64
		gain       int64
		wantLevel  int
		wantExp    int64
		wantGained int
	}{
		{
			name:  "no threshold crossed",
			level: 1, exp: 0, gain: 50,
			wantLevel: 1, wantExp: 50, wantGained: 0,
		},
		{
			name:  "exact threshold",
			level: 1, exp: 0, gain: 100,
			wantLevel: 2, wantExp: 0, wantGained: 1,
		},
		{
			name:  "remainder carries over",
			level: 1, exp: 90, gain: 30,
			wantLevel: 2, wantExp: 20, wantGained: 1,
		},
		{
			name:  "multi-level jump in one pass",
			level: 1, exp: 0, gain: 100 + 282 + 7,
			wantLevel: 3, wantExp: 7, wantGained: 2,
		},
		{
			name:  "zero gain",
			level: 5, exp: 42, gain: 0,
			wantLevel: 5, wantExp: 42, wantGained: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, exp, gained := ApplyExp(tt.level, tt.exp, tt.gain)
			if level != tt.wantLevel || exp != tt.wantExp || gained != tt.wantGained {
				t.Errorf("ApplyExp(%d, %d, %d) = (%d, %d, %d), want (%d, %d, %d)",
					tt.level, tt.exp, tt.gain,
					level, exp, gained,
					tt.wantLevel, tt.wantExp, tt.wantGained)
			}
		})
	}
}

// A single large gain must land on the same state as feeding the same
// total in one-point increments.
func TestApplyExpSinglePassEquivalence(t *testing.T) {
	cases := []struct {
		level int
		exp   int64
		gain  int64
	}{
		{level: 1, exp: 0, gain: 1500},
		{level: 2, exp: 100, gain: 950},
		{level: 7, exp: 0, gain: 5000},
	}
	for _, tc := range cases {
		wantLevel, wantExp, _ := ApplyExp(tc.level, tc.exp, tc.gain)

		level, exp := tc.level, tc.exp
		for i := int64(0); i < tc.gain; i++ {
			level, exp, _ = ApplyExp(level, exp, 1)
		}

		if level != wantLevel || exp != wantExp {
			t.Errorf("iterative ApplyExp from (%d, %d) with gain %d ended at (%d, %d), single pass gives (%d, %d)",
				tc.level, tc.exp, tc.gain, level, exp, wantLevel, wantExp)
		}
	}
}

func TestApplyExpNeverDecreases(t *testing.T) {
	level, exp, gained := ApplyExp(3, 0, 0)
	if level < 3 || exp < 0 || gained != 0 {
		t.Errorf("ApplyExp(3, 0, 0) = (%d, %d, %d), state must not regress", level, exp, gained)
	}
}
