package normalize

import "strconv"

func formatRatio(a, b float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64) + " / " + strconv.FormatFloat(b, 'f', -1, 64)
}
