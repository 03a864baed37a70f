/**
 * @description
 * Seed data used when a snapshot is missing: a starter set of tracked
 * subscriptions plus the static regional-service and bundle catalogs.
 */
package store

import (
	"time"

	"github.com/akshay12-del/subzz/internal/domain"
)

// SeedSubscriptions returns the starter subscription list, dated relative to
// now so the seeded entries are not already due.
func SeedSubscriptions(now time.Time) []domain.Subscription {
	nextNetflix := now.AddDate(0, 0, 12)
	nextSpotify := now.AddDate(0, 0, 5)
	nextPrime := now.AddDate(0, 3, 0)
	return []domain.Subscription{
		{
			ID:           "seed-netflix",
			Name:         "Netflix",
			Category:     "Entertainment",
			Icon:         "🎬",
			Price:        15.49,
			BillingCycle: domain.CycleMonthly,
			Status:       domain.StatusActive,
			StartDate:    now.AddDate(0, -6, 0),
			NextBilling:  &nextNetflix,
		},
		{
			ID:           "seed-spotify",
			Name:         "Spotify",
			Category:     "Music",
			Icon:         "🎵",
			Price:        9.99,
			BillingCycle: domain.CycleMonthly,
			Status:       domain.StatusActive,
			StartDate:    now.AddDate(0, -14, 0),
			NextBilling:  &nextSpotify,
		},
		{
			ID:           "seed-prime",
			Name:         "Amazon Prime",
			Category:     "Shopping",
			Icon:         "📦",
			Price:        139.00,
			BillingCycle: domain.CycleYearly,
			Status:       domain.StatusActive,
			StartDate:    now.AddDate(0, -9, 0),
			NextBilling:  &nextPrime,
		},
		{
			ID:           "seed-gym",
			Name:         "FitPass Gym",
			Category:     "Fitness",
			Icon:         "💪",
			Price:        29.99,
			BillingCycle: domain.CycleMonthly,
			Status:       domain.StatusPaused,
			StartDate:    now.AddDate(0, -3, 0),
		},
	}
}

// SeedRegionalServices returns the regional-service catalog.
func SeedRegionalServices() []domain.RegionalService {
	return []domain.RegionalService{
		{
			ID:          "jio",
			Name:        "Jio",
			Type:        domain.ServiceMobile,
			Region:      "India",
			Description: "Prepaid mobile recharge plans",
			Plans: []domain.ServicePlan{
				{Name: "Smart 239", Price: 239, Validity: "28 days", Details: "1.5GB/day, unlimited calls"},
				{Name: "Value 479", Price: 479, Validity: "56 days", Details: "1.5GB/day, unlimited calls"},
				{Name: "Annual 2999", Price: 2999, Validity: "365 days", Details: "2.5GB/day, unlimited calls"},
			},
		},
		{
			ID:          "airtel",
			Name:        "Airtel",
			Type:        domain.ServiceMobile,
			Region:      "India",
			Description: "Prepaid mobile recharge plans",
			Plans: []domain.ServicePlan{
				{Name: "Popular 299", Price: 299, Validity: "28 days", Details: "1.5GB/day, unlimited calls"},
				{Name: "Data 839", Price: 839, Validity: "84 days", Details: "2GB/day, unlimited calls"},
			},
		},
		{
			ID:          "zee5",
			Name:        "ZEE5",
			Type:        domain.ServiceOTT,
			Region:      "India",
			Description: "Regional OTT platform with multi-language content",
			Plans: []domain.ServicePlan{
				{Name: "Premium Monthly", Price: 99, Validity: "1 month", Details: "All content, 1 screen"},
				{Name: "Premium Annual", Price: 699, Validity: "12 months", Details: "All content, 3 screens"},
			},
		},
		{
			ID:          "sonyliv",
			Name:        "SonyLIV",
			Type:        domain.ServiceOTT,
			Region:      "India",
			Description: "Sports and regional entertainment",
			Plans: []domain.ServicePlan{
				{Name: "Mobile Only", Price: 599, Validity: "12 months", Details: "Mobile, 1 screen"},
				{Name: "Premium", Price: 999, Validity: "12 months", Details: "All devices, 2 screens"},
			},
		},
		{
			ID:          "hoichoi",
			Name:        "Hoichoi",
			Type:        domain.ServiceOTT,
			Region:      "India",
			Description: "Bengali movies, originals and series",
			Plans: []domain.ServicePlan{
				{Name: "Annual", Price: 599, Validity: "12 months", Details: "All content, 2 screens"},
			},
		},
	}
}

// SeedBundles returns the bundle-offer catalog.
func SeedBundles() []domain.Bundle {
	return []domain.Bundle{
		{
			ID:              "bundle-entertainment",
			Name:            "Entertainment Pack",
			Description:     "Movies, series and music in one plan",
			Subscriptions:   []string{"Netflix", "Spotify", "Disney+"},
			OriginalPrice:   36.47,
			DiscountedPrice: 27.99,
			Discount:        23,
		},
		{
			ID:              "bundle-family",
			Name:            "Family Essentials",
			Description:     "Everything the household already pays for, cheaper",
			Subscriptions:   []string{"Netflix", "Amazon Prime", "YouTube Premium"},
			OriginalPrice:   40.06,
			DiscountedPrice: 29.99,
			Discount:        25,
		},
		{
			ID:              "bundle-student",
			Name:            "Student Starter",
			Description:     "Music and streaming at student pricing",
			Subscriptions:   []string{"Spotify", "Disney+"},
			OriginalPrice:   17.98,
			DiscountedPrice: 11.99,
			Discount:        33,
		},
	}
}
