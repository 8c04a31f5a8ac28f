package nutrition

// Badge is a highlight derived from totals.
type Badge string

const (
	HighProtein Badge = "High Protein"
	HighFiber   Badge = "High Fiber"
	LowSodium   Badge = "Low Sodium"
)

// Thresholds for [Badges].
const (
	HighProteinGrams = 15.0
	HighFiberGrams   = 5.0
	LowSodiumMg      = 600.0
)

// Badges returns the badges t qualifies for, in a fixed order.
// An empty dish carries no sodium and so is Low Sodium.
func Badges(t Totals) []Badge {
	var out []Badge
	if t.Protein >= HighProteinGrams {
		out = append(out, HighProtein)
	}
	if t.Fiber >= HighFiberGrams {
		out = append(out, HighFiber)
	}
	if t.Sodium < LowSodiumMg {
		out = append(out, LowSodium)
	}
	return out
}
