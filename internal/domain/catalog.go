/**
 * @description
 * Catalog models for the explore surfaces: regional services (mobile
 * recharge and regional OTT platforms) and bundle offers. Catalog data is
 * read-only seed data; subscribe/recharge/apply actions against it are
 * simulated and never move wallet funds.
 */
package domain

// ServiceType classifies a regional service.
type ServiceType string

const (
	ServiceMobile ServiceType = "mobile"
	ServiceOTT    ServiceType = "ott"
)

// ServicePlan is one purchasable plan of a regional service.
type ServicePlan struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Validity string  `json:"validity"`
	Details  string  `json:"details"`
}

// RegionalService is a mobile operator or regional OTT platform.
type RegionalService struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Type        ServiceType   `json:"type"`
	Region      string        `json:"region"`
	Description string        `json:"description"`
	Plans       []ServicePlan `json:"plans"`
}

// Bundle is a discounted group of subscriptions offered together.
type Bundle struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Subscriptions   []string `json:"subscriptions"`
	OriginalPrice   float64  `json:"original_price"`
	DiscountedPrice float64  `json:"discounted_price"`
	Discount        int      `json:"discount"`
}

// Savings is the monthly amount saved by taking the bundle.
func (b Bundle) Savings() float64 {
	return b.OriginalPrice - b.DiscountedPrice
}

// Settings holds the user's presentation preferences.
type Settings struct {
	Theme     string `json:"theme"`
	FontScale int    `json:"font_scale"`
}
