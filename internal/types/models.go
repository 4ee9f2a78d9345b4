package types

// Response models for the HTTP surface. Field names and nesting are part of
// the API contract and must not change.

type BasketKPIs struct {
	TotalOrders         int     `json:"total_orders"`
	TotalItems          int     `json:"total_items"`
	AvgItemsPerOrder    float64 `json:"avg_items_per_order"`
	MedianItemsPerOrder float64 `json:"median_items_per_order"`
}

type CategoryTotal struct {
	Category   string `json:"category"`
	TotalItems int    `json:"total_items"`
}

type TopCategories struct {
	Limit         int             `json:"limit"`
	TopCategories []CategoryTotal `json:"top_categories"`
}

type DistributionSummary struct {
	TotalOrders    int    `json:"total_orders"`
	AnalysisPeriod string `json:"analysis_period"`
}

type DayBucket struct {
	Day        string  `json:"day"`
	DayNumber  int     `json:"day_number"`
	Orders     int     `json:"orders"`
	Percentage float64 `json:"percentage"`
}

type HourBucket struct {
	Hour   string `json:"hour"`
	Hour24 int    `json:"hour_24"`
	Orders int    `json:"orders"`
}

type OrderDistribution struct {
	Summary               DistributionSummary `json:"summary"`
	DayOfWeekDistribution []DayBucket         `json:"day_of_week_distribution"`
	PeakHours             []HourBucket        `json:"peak_hours"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
