package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/SahanLerners/scangenie-api/internal/domain"
)

const defaultBaseURL = "https://world.openfoodfacts.org"

const searchFields = "code,product_name,brands,categories,image_url,nutrition_grades,ingredients_text,allergens,nutriments"

const (
	barcodeTimeout  = 10 * time.Second
	searchTimeout   = 15 * time.Second
	fallbackTimeout = 10 * time.Second
)

// Client queries the Open Food Facts REST API. Both operations absorb
// transient failures: a lookup reports LookupFailed, a search returns an
// empty slice. Neither ever returns an error to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

// offProduct mirrors the provider's raw record, field names in the source
// system's casing.
type offProduct struct {
	Code            string         `json:"code"`
	ProductName     string         `json:"product_name"`
	Brands          string         `json:"brands"`
	Categories      string         `json:"categories"`
	ImageURL        string         `json:"image_url"`
	NutritionGrades string         `json:"nutrition_grades"`
	IngredientsText string         `json:"ingredients_text"`
	Allergens       string         `json:"allergens"`
	Nutriments      *offNutriments `json:"nutriments"`
}

type offNutriments struct {
	Energy        *float64 `json:"energy_100g"`
	Fat           *float64 `json:"fat_100g"`
	SaturatedFat  *float64 `json:"saturated-fat_100g"`
	Carbohydrates *float64 `json:"carbohydrates_100g"`
	Sugars        *float64 `json:"sugars_100g"`
	Fiber         *float64 `json:"fiber_100g"`
	Proteins      *float64 `json:"proteins_100g"`
	Salt          *float64 `json:"salt_100g"`
}

// ProductByBarcode does an exact lookup. The provider reports a missing code
// with status 0 in the body; that maps to LookupNotFound, never to an error.
func (c *Client) ProductByBarcode(ctx context.Context, barcode string) domain.BarcodeLookup {
	ctx, cancel := context.WithTimeout(ctx, barcodeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v2/product/"+url.PathEscape(barcode)+".json", nil)
	if err != nil {
		return domain.BarcodeLookup{Status: domain.LookupFailed}
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("barcode", barcode).Msg("barcode lookup failed")
		return domain.BarcodeLookup{Status: domain.LookupFailed}
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return domain.BarcodeLookup{Status: domain.LookupNotFound}
	}
	if res.StatusCode >= 300 {
		log.Warn().Int("status", res.StatusCode).Str("barcode", barcode).Msg("barcode lookup failed")
		return domain.BarcodeLookup{Status: domain.LookupFailed}
	}

	var body struct {
		Status  int         `json:"status"`
		Product *offProduct `json:"product"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		log.Warn().Err(err).Str("barcode", barcode).Msg("barcode response decode failed")
		return domain.BarcodeLookup{Status: domain.LookupFailed}
	}
	if body.Status == 0 || body.Product == nil {
		return domain.BarcodeLookup{Status: domain.LookupNotFound}
	}

	p := c.toProduct(*body.Product, "", "")
	return domain.BarcodeLookup{Status: domain.LookupFound, Product: &p}
}

// produceNames is the closed keyword list of raw produce; produce searches
// skip the category term because the database categorizes raw produce
// inconsistently.
var produceNames = []string{"banana", "apple", "orange", "tomato", "carrot"}

func isProduce(name, category string) bool {
	cat := strings.ToLower(category)
	if strings.Contains(cat, "fruit") || strings.Contains(cat, "vegetable") {
		return true
	}
	for _, n := range produceNames {
		if strings.Contains(name, n) {
			return true
		}
	}
	return false
}

// SearchByName does a free-text search. When the primary query yields zero
// results it issues exactly one broader search on the first token of the
// name, capped at 3 results. Any failure yields an empty slice.
func (c *Client) SearchByName(ctx context.Context, name, category string) []domain.Product {
	clean := strings.ToLower(strings.TrimSpace(name))

	query := clean
	if category != "" && !isProduce(clean, category) {
		query = clean + " " + category
	}

	raw, err := c.search(ctx, query, 20, searchTimeout)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("product search failed")
		return []domain.Product{}
	}
	if len(raw) == 0 {
		token := clean
		if i := strings.IndexByte(clean, ' '); i > 0 {
			token = clean[:i]
		}
		raw, err = c.search(ctx, token, 10, fallbackTimeout)
		if err != nil {
			log.Warn().Err(err).Str("query", token).Msg("fallback search failed")
			return []domain.Product{}
		}
		if len(raw) > 3 {
			raw = raw[:3]
		}
	}

	out := make([]domain.Product, 0, len(raw))
	for _, r := range raw {
		out = append(out, c.toProduct(r, name, category))
	}
	return out
}

func (c *Client) search(ctx context.Context, terms string, pageSize int, timeout time.Duration) ([]offProduct, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	q := url.Values{}
	q.Set("search_terms", terms)
	q.Set("search_simple", "1")
	q.Set("action", "process")
	q.Set("json", "1")
	q.Set("page_size", fmt.Sprint(pageSize))
	q.Set("fields", searchFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/cgi/search.pl?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return nil, fmt.Errorf("search status %d", res.StatusCode)
	}

	var body struct {
		Products []offProduct `json:"products"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.Products, nil
}

// toProduct maps a raw provider record into the canonical Product. Every
// field defaults independently; absent nutrients stay nil so "unknown" never
// collapses into "zero".
func (c *Client) toProduct(raw offProduct, fallbackName, fallbackCategory string) domain.Product {
	category := fallbackCategory
	if category == "" {
		category = raw.Categories
	}
	name := raw.ProductName
	if name == "" {
		name = fallbackName
	}

	var facts *domain.NutritionFacts
	if raw.Nutriments != nil {
		facts = &domain.NutritionFacts{
			Energy:        raw.Nutriments.Energy,
			Fat:           raw.Nutriments.Fat,
			SaturatedFat:  raw.Nutriments.SaturatedFat,
			Carbohydrates: raw.Nutriments.Carbohydrates,
			Sugars:        raw.Nutriments.Sugars,
			Fiber:         raw.Nutriments.Fiber,
			Proteins:      raw.Nutriments.Proteins,
			Salt:          raw.Nutriments.Salt,
		}
	}

	return domain.Normalize(domain.Product{
		ID:             raw.Code,
		Barcode:        raw.Code,
		Name:           name,
		Brand:          raw.Brands,
		Category:       category,
		ImageURL:       raw.ImageURL,
		NutritionGrade: raw.NutritionGrades,
		Ingredients:    domain.SplitList(raw.IngredientsText),
		Allergens:      domain.SplitList(raw.Allergens),
		NutritionFacts: facts,
	}, domain.TagSearch, c.now())
}
