package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Layouts the backend has been observed to use for date fields.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// payDateLayout is the VNPay return-parameter timestamp format.
const payDateLayout = "20060102150405"

// DateTime renders a backend date string as "02/01/2006 15:04". Unparseable
// input is returned unchanged so the UI still shows something.
func DateTime(s string) string {
	if s == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("02/01/2006 15:04")
		}
	}

	return s
}

// PayDate converts a VNPay yyyyMMddHHmmss timestamp to a readable form.
func PayDate(s string) string {
	t, err := time.Parse(payDateLayout, s)

	if err != nil {
		return s
	}

	return t.Format("2006-01-02 15:04:05")
}

// Price renders a VND amount with dot thousand separators, e.g. "150.000 VND".
func Price(amount decimal.Decimal) string {
	s := amount.Round(0).String()

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder

	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := b.String() + " VND"
	if neg {
		out = "-" + out
	}
	return out
}
