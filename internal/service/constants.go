package service

const (
	// Chart windows
	ChartWeeks = 12

	// List sizes
	RecentSessionsShown = 5
)
