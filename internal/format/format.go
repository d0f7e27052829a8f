package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatPower formats an active power value given in kW.
// Values >= 1000 kW are shown in MW with 2 decimal places; smaller values in
// kW with 1 decimal place and comma separators.
// Example: 845.25 → "845.3 kW", 12500 → "12.50 MW".
func FormatPower(kw float64) string {
	if math.IsNaN(kw) || math.IsInf(kw, 0) {
		return "---"
	}
	if math.Abs(kw) >= 1000 {
		return fmt.Sprintf("%.2f MW", kw/1000)
	}
	return formatCommaFloat(kw) + " kW"
}

// FormatEnergy formats an energy value given in kWh.
// Thresholds: <1 MWh → kWh, <1 GWh → MWh, else GWh.
// Example: 950 → "950.0 kWh", 1250 → "1.25 MWh".
func FormatEnergy(kwh float64) string {
	if math.IsNaN(kwh) || math.IsInf(kwh, 0) {
		return "---"
	}
	switch abs := math.Abs(kwh); {
	case abs < 1_000:
		return fmt.Sprintf("%.1f kWh", kwh)
	case abs < 1_000_000:
		return fmt.Sprintf("%.2f MWh", kwh/1_000)
	default:
		return fmt.Sprintf("%.2f GWh", kwh/1_000_000)
	}
}

// FormatTemperature formats degrees Celsius; zero is treated as not reported.
func FormatTemperature(c float64) string {
	if c == 0 || math.IsNaN(c) {
		return "---"
	}
	return fmt.Sprintf("%.1f°C", c)
}

// FormatAge formats the time elapsed since a past instant in a compact form.
// Example: 45s → "45s ago", 3m10s → "3m ago", 2h → "2h ago".
// A zero instant returns "never".
func FormatAge(since time.Time, now time.Time) string {
	if since.IsZero() {
		return "never"
	}
	d := now.Sub(since)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// FormatInterval formats a polling interval without trailing zero units.
// Example: 30s → "30s", 90s → "1m30s", 2m → "2m".
func FormatInterval(d time.Duration) string {
	if d <= 0 {
		return "off"
	}
	if d < time.Second {
		return d.String()
	}
	s := d.Round(time.Second).String()
	if strings.HasSuffix(s, "m0s") {
		s = strings.TrimSuffix(s, "0s")
	}
	if strings.HasSuffix(s, "h0m") {
		s = strings.TrimSuffix(s, "0m")
	}
	return s
}

// FormatNumber formats an integer with locale-style comma separators.
// Example: 12345678 → "12,345,678".
// Uses strconv.FormatInt directly to avoid abs64 overflow for math.MinInt64.
func FormatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	if n < 0 {
		// s starts with "-"; strip it, insert commas, restore sign.
		return "-" + insertCommas(s[1:])
	}
	return insertCommas(s)
}

// FormatPercent formats a percentage with one decimal place.
// Example: 34.5 → "34.5%".
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// formatCommaFloat formats a float with comma-separated thousands and one decimal place.
func formatCommaFloat(f float64) string {
	formatted := fmt.Sprintf("%.1f", f)
	sign := ""
	if len(formatted) > 0 && formatted[0] == '-' {
		sign = "-"
		formatted = formatted[1:]
	}
	parts := strings.SplitN(formatted, ".", 2)
	intPart := insertCommas(parts[0])
	if len(parts) == 2 {
		return sign + intPart + "." + parts[1]
	}
	return sign + intPart
}

// insertCommas inserts comma separators into a digit string every 3 digits from the right.
func insertCommas(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var buf strings.Builder
	lead := n % 3
	if lead > 0 {
		buf.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(s[i : i+3])
	}
	return buf.String()
}
