package wall

import (
	"fmt"
	"strings"
)

// =============================================================================
// DISPLAY FORMATTING - Pure helpers, no business rules beyond percent clamp
// =============================================================================

// FormatYen renders a yen amount with grouping, e.g. "¥1,030,000". Fractions
// from intermediate estimates are rounded to whole yen for display.
func FormatYen(y Yen) string {
	v := y.Value.Round(0).IntPart()
	neg := v < 0
	if neg {
		v = -v
	}

	digits := fmt.Sprintf("%d", v)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-¥" + b.String()
	}
	return "¥" + b.String()
}

// FormatPercent renders an integer percent clamped to [0, 100].
func FormatPercent(pct int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return fmt.Sprintf("%d%%", pct)
}
