package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrice(t *testing.T) {
	t.Parallel()

	cases := map[int64]string{
		1999:    "$ 19.99",
		4490:    "$ 44.90",
		5:       "$ 0.05",
		123456:  "$ 1,234.56",
		-250:    "-$ 2.50",
		1000000: "$ 10,000.00",
	}
	for in, want := range cases {
		require.Equal(t, want, Price(in), "Price(%d)", in)
	}
}
