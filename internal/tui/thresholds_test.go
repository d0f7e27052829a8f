package tui

import "testing"

func TestThreshold_Availability(t *testing.T) {
	cases := []struct {
		pct  float64
		want severity
	}{
		{100, severityNormal},
		{90, severityNormal},    // boundary: <90 triggers warning
		{89.9, severityWarning},
		{75, severityWarning},   // boundary: <75 triggers critical
		{74.9, severityCritical},
		{0, severityCritical},
	}
	for _, tc := range cases {
		got := availabilitySeverity(tc.pct)
		if got != tc.want {
			t.Errorf("availabilitySeverity(%v) = %v, want %v", tc.pct, got, tc.want)
		}
	}
}

func TestThreshold_Temperature(t *testing.T) {
	cases := []struct {
		c    float64
		want severity
	}{
		{0, severityNormal},
		{69.9, severityNormal},
		{70, severityWarning},  // boundary: >=70 triggers warning
		{84.9, severityWarning},
		{85, severityCritical}, // boundary: >=85 triggers critical
		{120, severityCritical},
	}
	for _, tc := range cases {
		got := temperatureSeverity(tc.c)
		if got != tc.want {
			t.Errorf("temperatureSeverity(%v) = %v, want %v", tc.c, got, tc.want)
		}
	}
}

func TestThreshold_Efficiency(t *testing.T) {
	cases := []struct {
		pct  float64
		want severity
	}{
		{0, severityNormal},    // not reported
		{-1, severityNormal},
		{50, severityCritical},
		{79.9, severityCritical},
		{80, severityWarning},
		{89.9, severityWarning},
		{90, severityNormal},
		{98.5, severityNormal},
	}
	for _, tc := range cases {
		got := efficiencySeverity(tc.pct)
		if got != tc.want {
			t.Errorf("efficiencySeverity(%v) = %v, want %v", tc.pct, got, tc.want)
		}
	}
}

func TestThreshold_AlertCount(t *testing.T) {
	cases := []struct {
		total, critical int
		want            severity
	}{
		{0, 0, severityNormal},
		{3, 0, severityWarning},
		{3, 1, severityCritical},
	}
	for _, tc := range cases {
		got := alertCountSeverity(tc.total, tc.critical)
		if got != tc.want {
			t.Errorf("alertCountSeverity(%d, %d) = %v, want %v", tc.total, tc.critical, got, tc.want)
		}
	}
}

func TestSeverityFg(t *testing.T) {
	if severityFg(severityNormal) != colorGreen {
		t.Error("normal should be green")
	}
	if severityFg(severityWarning) != colorYellow {
		t.Error("warning should be yellow")
	}
	if severityFg(severityCritical) != colorRed {
		t.Error("critical should be red")
	}
}
