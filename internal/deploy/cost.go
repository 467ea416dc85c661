// Package deploy holds the figures shown on the deployment lesson.
package deploy

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
)

// Won is the currency marker an amount must carry to be counted.
const Won = "원"

// CostItem is one line of the yearly running-cost table.
type CostItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DefaultCosts returns the cost table of the deployment lesson.
func DefaultCosts() []CostItem {
	return []CostItem{
		{Label: "Domain (.com)", Value: "15,000원"},
		{Label: "Web hosting (basic plan)", Value: "96,000원"},
		{Label: "SSL certificate", Value: "Free (Let's Encrypt)"},
		{Label: "CDN and backups", Value: "21,000원"},
	}
}

// CostTotal sums the digits of every value containing Won. Values without
// the marker, without digits, or too large to parse are skipped.
func CostTotal(values []string) int64 {
	var total int64
	for _, v := range values {
		if !strings.Contains(v, Won) {
			continue
		}
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, v)
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			continue
		}
		total += n
	}
	return total
}

// ItemsTotal sums the values of items.
func ItemsTotal(items []CostItem) int64 {
	values := make([]string, len(items))
	for i, it := range items {
		values[i] = it.Value
	}
	return CostTotal(values)
}

// FormatYearly renders a total such as "132,000원/년".
func FormatYearly(total int64) string {
	return humanize.Comma(total) + Won + "/년"
}

// IsAmount reports whether s reads as a counted amount.
func IsAmount(s string) bool {
	return strings.Contains(s, Won) && strings.IndexFunc(s, unicode.IsDigit) >= 0
}
