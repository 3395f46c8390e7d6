package format

import (
	"fmt"
	"strings"
)

// Price formats an amount in cents as shown on the storefront.
// Example: Price(1999) => "$ 19.99"
func Price(minor int64) string {
	neg := minor < 0
	if neg {
		minor = -minor
	}
	head := thousandSep(minor / 100)
	tail := fmt.Sprintf("%02d", minor%100)
	if neg {
		return "-$ " + head + "." + tail
	}
	return "$ " + head + "." + tail
}

func thousandSep(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var out strings.Builder
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	if neg {
		return "-" + out.String()
	}
	return out.String()
}
