package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is the canonical representation of a scannable item. Every source
// (barcode database, AI identification, manual search) is mapped into this
// shape before it is displayed or stored.
type Product struct {
	ID             string          `json:"id"`
	Barcode        string          `json:"barcode,omitempty"`
	Name           string          `json:"name"`
	Brand          string          `json:"brand,omitempty"`
	Category       string          `json:"category,omitempty"`
	ImageURL       string          `json:"imageUrl,omitempty"`
	NutritionGrade string          `json:"nutritionGrade,omitempty"`
	Ingredients    []string        `json:"ingredients"`
	Allergens      []string        `json:"allergens"`
	NutritionFacts *NutritionFacts `json:"nutritionFacts,omitempty"`
	ScannedAt      time.Time       `json:"scannedAt"`
}

// NutritionFacts holds per-100g nutrient values. A nil field means the source
// did not report that nutrient, which is distinct from a reported zero.
type NutritionFacts struct {
	Energy        *float64 `json:"energy,omitempty"`
	Fat           *float64 `json:"fat,omitempty"`
	SaturatedFat  *float64 `json:"saturatedFat,omitempty"`
	Carbohydrates *float64 `json:"carbohydrates,omitempty"`
	Sugars        *float64 `json:"sugars,omitempty"`
	Fiber         *float64 `json:"fiber,omitempty"`
	Proteins      *float64 `json:"proteins,omitempty"`
	Salt          *float64 `json:"salt,omitempty"`
}

// AIProductIdentification is the parsed reply of an image identification
// request. ProductName is nil when the model could not identify the product;
// that is a legitimate outcome, callers must check it before use.
type AIProductIdentification struct {
	ProductName         *string  `json:"product_name"`
	Brand               string   `json:"brand,omitempty"`
	Category            string   `json:"category,omitempty"`
	Confidence          float64  `json:"confidence"`
	Description         string   `json:"description,omitempty"`
	EstimatedPriceRange string   `json:"estimated_price_range,omitempty"`
	KeyFeatures         []string `json:"key_features,omitempty"`
	Error               string   `json:"error,omitempty"`
}

// AlternativeType classifies a suggested substitute product.
type AlternativeType string

const (
	AlternativeBudget      AlternativeType = "budget"
	AlternativeHealthier   AlternativeType = "healthier"
	AlternativeEcoFriendly AlternativeType = "eco_friendly"
)

// AIAlternative is one suggested substitute. Prices are display strings, not
// numbers; they are never used for arithmetic. Alternatives are generated
// fresh per request and never persisted; list order is the ranking.
type AIAlternative struct {
	Name              string          `json:"name"`
	Brand             string          `json:"brand"`
	Category          string          `json:"category"`
	EstimatedPrice    string          `json:"estimated_price"`
	OriginalPrice     string          `json:"original_price,omitempty"`
	SavingsPercentage int             `json:"savings_percentage"`
	Reason            string          `json:"reason"`
	KeyFeatures       []string        `json:"key_features"`
	WhereToFind       string          `json:"where_to_find"`
	Confidence        float64         `json:"confidence"`
	AlternativeType   AlternativeType `json:"alternative_type"`
}

// ScanRecord joins a user with a Product snapshot taken at scan time. The
// snapshot is embedded by value: later changes to the canonical product do
// not propagate. ScannedAt is assigned by the database server on write.
type ScanRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"size:128;index" json:"userId"`
	Product   Product   `gorm:"type:jsonb;serializer:json" json:"product"`
	ScannedAt time.Time `gorm:"index;default:now()" json:"scannedAt"`
}

// Favorite is a user-pinned Product snapshot. Deleted only by explicit user
// action, never mutated.
type Favorite struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  string    `gorm:"size:128;index" json:"userId"`
	Product Product   `gorm:"type:jsonb;serializer:json" json:"product"`
	AddedAt time.Time `gorm:"index;default:now()" json:"addedAt"`
}

// UserFlag stores per-user boolean settings, currently only the
// onboarding-complete marker read when the app starts.
type UserFlag struct {
	UserID         string    `gorm:"size:128;primaryKey" json:"userId"`
	OnboardingDone bool      `json:"onboardingDone"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UserAnalytics is derived in full from the stored history on every request.
// Nothing here is persisted or incrementally maintained.
type UserAnalytics struct {
	TotalScans        int            `json:"totalScans"`
	FavoriteCount     int            `json:"favoriteCount"`
	CategoriesScanned map[string]int `json:"categoriesScanned"`
	MonthlyScans      map[string]int `json:"monthlyScans"`
}
