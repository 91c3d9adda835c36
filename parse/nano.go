package parse

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// formatNano renders an epoch offset at full nanosecond resolution. If the
// layout already carries a fractional-second directive the layout wins;
// otherwise nine fractional digits are appended so no precision is lost.
func formatNano(offset float64, layout string) string {
	sec := math.Floor(offset)
	nanos := int64(math.Round((offset - sec) * 1e9))
	if nanos >= 1e9 {
		sec++
		nanos -= 1e9
	}
	t := time.Unix(int64(sec), nanos).UTC()
	if layoutHasFraction(layout) {
		return t.Format(layout)
	}
	return fmt.Sprintf("%s.%09d", t.Format(layout), nanos)
}

func layoutHasFraction(layout string) bool {
	return strings.Contains(layout, ".0") || strings.Contains(layout, ".9")
}
