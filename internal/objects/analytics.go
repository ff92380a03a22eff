package objects

// TokenResponse is the credential issuance payload.
type TokenResponse struct {
	Token         string `json:"token"`
	TokenType     string `json:"token_type"`
	Identity      string `json:"identity"`
	Role          string `json:"role"`
	ResourceScope string `json:"resource_scope"`
}

// ReportResponse carries the synthesized research report.
type ReportResponse struct {
	Report string `json:"report"`
}

// ScenarioResult is the outcome of a what-if revenue projection.
type ScenarioResult struct {
	BaselineRevenue int64  `json:"baseline_revenue"`
	NewRevenue      int64  `json:"new_revenue"`
	Delta           int64  `json:"delta"`
	RiskAnalysis    string `json:"risk_analysis"`
}

// RentGrowthPoint is one year of portfolio vs market rent growth.
type RentGrowthPoint struct {
	Year      string  `json:"year"`
	Portfolio float64 `json:"portfolio"`
	Market    float64 `json:"market"`
}

// OccupancyPoint is one quarter of portfolio occupancy.
type OccupancyPoint struct {
	Quarter string  `json:"quarter"`
	Value   float64 `json:"value"`
}

// AnalyticsData is the fixed dashboard series.
type AnalyticsData struct {
	RentGrowth []RentGrowthPoint `json:"rent_growth"`
	Occupancy  []OccupancyPoint  `json:"occupancy"`
}

// RentPrediction is the rent estimator payload.
type RentPrediction struct {
	EstimatedRent int    `json:"estimated_rent"`
	FormattedRent string `json:"formatted_rent"`
	Currency      string `json:"currency"`
}

// ChurnPrediction is the churn riskometer payload.
type ChurnPrediction struct {
	ChurnProbability float64 `json:"churn_probability"`
	RiskLevel        string  `json:"risk_level"`
}
