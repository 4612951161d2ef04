package components

import (
	"strconv"
	"strings"

	"github.com/tickergate/tickergate/internal/services/price"
)

// FormatUSD renders a dollar amount with western digit grouping,
// e.g. 2345.67 -> "$2,345.67"
func FormatUSD(v float64) string {
	whole, frac := splitAmount(v)
	return "$" + groupWestern(whole) + "." + frac
}

// FormatINR renders a rupee amount with Indian digit grouping,
// e.g. 195432.1 -> "₹1,95,432.10"
func FormatINR(v float64) string {
	whole, frac := splitAmount(v)
	return "₹" + groupIndian(whole) + "." + frac
}

func splitAmount(v float64) (whole, frac string) {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimPrefix(s, "-")
	parts := strings.SplitN(s, ".", 2)
	return parts[0], parts[1]
}

// groupWestern inserts a separator every three digits: 1234567 -> 1,234,567
func groupWestern(digits string) string {
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// groupIndian groups the last three digits, then every two:
// 19543210 -> 1,95,43,210
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)
	return strings.Join(groups, ",")
}

// directionClass maps a price movement to its display class
func directionClass(d price.Direction) string {
	switch d {
	case price.DirectionUp:
		return "price-up"
	case price.DirectionDown:
		return "price-down"
	default:
		return ""
	}
}
