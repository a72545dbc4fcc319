package analytics

import (
	"fmt"
	"math"
	"strconv"
)

// FormatRupiah renders an amount as "Rp 1.250.000" with Indonesian digit
// grouping. Fractions are dropped; the tracker works in whole rupiah.
func FormatRupiah(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	s := strconv.FormatInt(n, 10)
	var grouped []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, d)
	}
	return fmt.Sprintf("%sRp %s", sign, grouped)
}
