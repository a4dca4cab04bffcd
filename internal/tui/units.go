package tui

import (
	"fmt"

	"swimtracker/internal/config"
)

const metersPerKm = 1000.0

// Units provides unit conversion and formatting based on user preferences
type Units struct {
	cfg config.DisplayConfig
}

// NewUnits creates a new Units helper with the given display config
func NewUnits(cfg config.DisplayConfig) Units {
	return Units{cfg: cfg}
}

// FormatDistance formats a distance in meters to the user's preferred unit
func (u Units) FormatDistance(meters float64) string {
	if u.cfg.DistanceUnit == "m" {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.1f km", meters/metersPerKm)
}

// FormatDistanceValue returns just the numeric distance value (no unit label)
func (u Units) FormatDistanceValue(meters float64) string {
	if u.cfg.DistanceUnit == "m" {
		return fmt.Sprintf("%.0f", meters)
	}
	return fmt.Sprintf("%.1f", meters/metersPerKm)
}

// FormatPace formats a pace in minutes per 100m as m:ss
func (u Units) FormatPace(pace float64) string {
	if pace <= 0 {
		return "-"
	}
	totalSeconds := int(pace*60 + 0.5)
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}

// FormatPaceWithUnit formats pace with the unit label
func (u Units) FormatPaceWithUnit(pace float64) string {
	p := u.FormatPace(pace)
	if p == "-" {
		return p
	}
	return p + "/100m"
}

// FormatDuration formats a duration in minutes as "1h 05m" or "42m"
func (u Units) FormatDuration(minutes float64) string {
	total := int(minutes + 0.5)
	h := total / 60
	m := total % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatSwolf formats a SWOLF score, "-" when unknown
func (u Units) FormatSwolf(swolf float64) string {
	if swolf <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f", swolf)
}

// DistanceLabel returns the short unit label ("km" or "m")
func (u Units) DistanceLabel() string {
	if u.cfg.DistanceUnit == "m" {
		return "m"
	}
	return "km"
}

// ChartDistances converts meter series to the display unit for charts
func (u Units) ChartDistances(meters []float64) []float64 {
	if u.cfg.DistanceUnit == "m" {
		return meters
	}
	converted := make([]float64, len(meters))
	for i, m := range meters {
		converted[i] = m / metersPerKm
	}
	return converted
}
