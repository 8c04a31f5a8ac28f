package layout

import (
	"testing"

	"github.com/matzehuels/foodstack/pkg/catalog"
)

func TestUnitRange(t *testing.T) {
	ids := []catalog.ID{"", "a", "pepperoni", "olives", "x-very-long_identifier"}
	channels := []Channel{ChannelAngle, ChannelRadius, ChannelJitter, ChannelYaw}
	for _, id := range ids {
		for i := range 200 {
			for _, ch := range channels {
				u := Unit(id, i, ch)
				if u < 0 || u >= 1 {
					t.Fatalf("Unit(%q, %d, %d) = %v, want [0,1)", id, i, ch, u)
				}
			}
		}
	}
}

func TestUnitDeterministic(t *testing.T) {
	a := Unit("pepperoni", 3, ChannelAngle)
	b := Unit("pepperoni", 3, ChannelAngle)
	if a != b {
		t.Errorf("Unit not deterministic: %v != %v", a, b)
	}
}

func TestUnitChannelsIndependent(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
	}{
		{"channel", Unit("olives", 0, ChannelAngle), Unit("olives", 0, ChannelRadius)},
		{"index", Unit("olives", 0, ChannelAngle), Unit("olives", 1, ChannelAngle)},
		{"id", Unit("olives", 0, ChannelAngle), Unit("basil", 0, ChannelAngle)},
		{"separator", Unit("a", 0x62, ChannelYaw), Unit("ab", 0, ChannelYaw)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a == tt.b {
				t.Errorf("expected distinct values, both %v", tt.a)
			}
		})
	}
}

func TestUnitSpread(t *testing.T) {
	// A coarse histogram: every decile should be hit by 1000 samples.
	var buckets [10]int
	for i := range 1000 {
		buckets[int(Unit("mushrooms", i, ChannelRadius)*10)]++
	}
	for i, n := range buckets {
		if n < 50 || n > 150 {
			t.Errorf("decile %d has %d samples, want roughly 100", i, n)
		}
	}
}
