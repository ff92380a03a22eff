package objects

// PropertyFeatures is the rent estimator input.
type PropertyFeatures struct {
	Neighborhood  string `json:"neighborhood"`
	PropertyClass string `json:"property_class"`
	UnitType      string `json:"unit_type"`
	Sqft          int    `json:"sqft"`
}

// TenantFeatures is the churn riskometer input.
type TenantFeatures struct {
	Income      int `json:"income"`
	CreditScore int `json:"credit_score"`
	MarketRent  int `json:"market_rent"`
	Sqft        int `json:"sqft"`
}
