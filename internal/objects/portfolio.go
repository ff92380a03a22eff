package objects

// Property is the roll-up view of one property in the portfolio.
type Property struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Neighborhood string `json:"neighborhood"`
	Class        string `json:"class"`
	Units        int    `json:"units"`
	Occupancy    int    `json:"occupancy"`
	NOI          int    `json:"noi"`
	AvgRent      int    `json:"avg_rent"`
}

// ResourceID implements authz.Scoped.
func (p Property) ResourceID() string {
	return p.ID
}

// Unit is a single rentable unit inside a property.
type Unit struct {
	ID         string `json:"id"`
	PropertyID string `json:"property_id"`
	Type       string `json:"type"`
	Sqft       int    `json:"sqft"`
	MarketRent int    `json:"market_rent"`
}

// ResourceID implements authz.Scoped.
func (u Unit) ResourceID() string {
	return u.PropertyID
}

// YieldOpportunity is an under-rented unit with its annualized upside.
type YieldOpportunity struct {
	UnitID      string `json:"unit_id"`
	Type        string `json:"type"`
	CurrentRent int    `json:"current_rent"`
	MarketRent  int    `json:"market_rent"`
	Gain        int    `json:"gain"`
	Sqft        int    `json:"sqft"`
}

// Tenant is a leaseholder attached to a unit of a property.
type Tenant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PropertyID  string `json:"property_id"`
	UnitID      string `json:"unit_id"`
	Income      int    `json:"income"`
	CreditScore int    `json:"credit_score"`
	MarketRent  int    `json:"market_rent"`
}

// ResourceID implements authz.Scoped.
func (t Tenant) ResourceID() string {
	return t.PropertyID
}
