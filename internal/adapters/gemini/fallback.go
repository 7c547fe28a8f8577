package gemini

import (
	"fmt"
	"strings"

	"github.com/SahanLerners/scangenie-api/internal/domain"
)

// categoryPrices is the fixed table behind the price estimate. First keyword
// match wins.
var categoryPrices = []struct {
	keyword string
	price   float64
}{
	{"snack", 3.99},
	{"beverage", 2.49},
	{"drink", 2.49},
	{"dairy", 4.99},
	{"bread", 3.49},
	{"bakery", 3.49},
	{"meat", 8.99},
	{"frozen", 5.99},
	{"cereal", 4.49},
	{"sauce", 2.99},
	{"condiment", 2.99},
}

const defaultPrice = 4.99

func estimatePrice(p domain.Product) float64 {
	category := strings.ToLower(p.Category)
	for _, cp := range categoryPrices {
		if strings.Contains(category, cp.keyword) {
			return cp.price
		}
	}
	return defaultPrice
}

func dollars(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// FallbackAlternatives synthesizes suggestions when the model cannot. It is
// a pure function of the input product and the static price table: same
// product in, identical list out, price figures included.
func FallbackAlternatives(p domain.Product) []domain.AIAlternative {
	category := p.Category
	if category == "" {
		category = "General"
	}
	base := estimatePrice(p)

	bareName := p.Name
	if p.Brand != "" {
		bareName = strings.TrimSpace(strings.ReplaceAll(bareName, p.Brand, ""))
	}

	alts := []domain.AIAlternative{{
		Name:              "Store Brand " + bareName,
		Brand:             "Generic Brand",
		Category:          category,
		EstimatedPrice:    dollars(base * 0.7),
		OriginalPrice:     dollars(base),
		SavingsPercentage: 30,
		Reason:            "Same quality ingredients at a lower price point",
		KeyFeatures:       []string{"Same Quality", "Lower Cost", "Widely Available"},
		WhereToFind:       "Walmart, Kroger, Safeway",
		Confidence:        0.85,
		AlternativeType:   domain.AlternativeBudget,
	}}

	lower := strings.ToLower(category)
	if strings.Contains(lower, "food") || strings.Contains(lower, "snack") || strings.Contains(lower, "dairy") {
		alts = append(alts, domain.AIAlternative{
			Name:              "Organic " + p.Name,
			Brand:             "Organic Brand",
			Category:          category,
			EstimatedPrice:    dollars(base * 0.9),
			OriginalPrice:     dollars(base * 1.2),
			SavingsPercentage: 25,
			Reason:            "Organic ingredients with better nutritional profile",
			KeyFeatures:       []string{"Organic", "No Preservatives", "Better Nutrition"},
			WhereToFind:       "Whole Foods, Target, Amazon",
			Confidence:        0.78,
			AlternativeType:   domain.AlternativeHealthier,
		})
	}

	alts = append(alts, domain.AIAlternative{
		Name:              "Eco-Friendly " + p.Name,
		Brand:             "Green Brand",
		Category:          category,
		EstimatedPrice:    dollars(base * 0.85),
		OriginalPrice:     dollars(base),
		SavingsPercentage: 15,
		Reason:            "Sustainable packaging",
		KeyFeatures:       []string{"Eco-Friendly", "Sustainable", "Recyclable Packaging"},
		WhereToFind:       "Target, Amazon, Local Stores",
		Confidence:        0.72,
		AlternativeType:   domain.AlternativeEcoFriendly,
	})

	return alts
}
