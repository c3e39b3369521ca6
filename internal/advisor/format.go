package advisor

import (
	"fmt"
	"strconv"
	"strings"
)

const errorTemplate = "❌ Error: %s"

const successTemplate = `🌍 Clothing advice for %s

📊 Current weather:
• Temperature: %s°C
• Condition: %s

👔 What to wear:
%s

💡 Tip:
Check the weather again before heading out and adjust to how you feel.`

// Format renders the final text for rec. When rec.Err is set only the error
// message is rendered.
func Format(rec Record) string {
	if rec.Failed() {
		return fmt.Sprintf(errorTemplate, rec.Err.Error())
	}
	return fmt.Sprintf(successTemplate, rec.City, formatTemp(rec.TempC), rec.Condition, rec.Suggestion)
}

// formatTemp prints the shortest exact form of t, keeping at least one
// fractional digit: 5 -> "5.0", 12.25 -> "12.25".
func formatTemp(t float64) string {
	s := strconv.FormatFloat(t, 'f', -1, 64)
	if strings.ContainsAny(s, ".NI") {
		return s
	}
	return s + ".0"
}
