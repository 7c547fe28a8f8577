package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/vertexai/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"github.com/SahanLerners/scangenie-api/internal/domain"
)

const defaultModel = "gemini-1.5-flash"

const identifyPrompt = `Analyze this product image and identify the product. Return ONLY a JSON object with this exact structure:
{
  "product_name": "exact product name",
  "brand": "brand name if visible",
  "category": "food category (e.g., snacks, beverages, dairy, etc.)",
  "confidence": 0.95,
  "description": "brief product description",
  "estimated_price_range": "$2.99 - $4.99",
  "key_features": ["feature1", "feature2", "feature3"]
}
If you cannot clearly identify the product, return:
{
  "product_name": null,
  "confidence": 0.0,
  "error": "Could not identify product from image"
}`

// generator is the slice of *genai.GenerativeModel the client uses; tests
// substitute a fake.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Config holds the Vertex AI settings. An empty ProjectID leaves the client
// unconfigured: identification reports unavailable and alternatives come
// from the local generator.
type Config struct {
	ProjectID       string
	Location        string
	CredentialsFile string
	Model           string
}

// Client talks to the Gemini model. Every public operation has a defined
// "nothing happened" result; upstream failures are logged, never propagated.
type Client struct {
	model generator
	gate  *Gate
}

func NewClient(ctx context.Context, cfg Config) *Client {
	c := &Client{gate: NewGate(time.Second)}

	if cfg.ProjectID == "" {
		log.Warn().Msg("gemini not configured, image identification disabled")
		return c
	}

	opts := []option.ClientOption{}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	gc, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Location, opts...)
	if err != nil {
		log.Warn().Err(err).Msg("gemini client init failed, image identification disabled")
		return c
	}
	name := cfg.Model
	if name == "" {
		name = defaultModel
	}
	c.model = gc.GenerativeModel(name)
	return c
}

// IdentifyImage sends a photo with the fixed instruction prompt and parses
// the strict JSON reply. A reply whose product_name is null is a legitimate
// "could not identify" outcome, not a failure.
func (c *Client) IdentifyImage(ctx context.Context, image []byte) domain.Identification {
	if c.model == nil {
		return domain.Identification{Status: domain.IdentifyUnavailable}
	}
	c.gate.Wait()

	resp, err := c.model.GenerateContent(ctx, genai.Text(identifyPrompt), genai.ImageData("jpeg", image))
	if err != nil {
		log.Warn().Err(err).Msg("gemini identify call failed")
		return domain.Identification{Status: domain.IdentifyUnavailable}
	}
	text := firstText(resp)
	if text == "" {
		return domain.Identification{Status: domain.IdentifyUnavailable}
	}

	id, ok := parseIdentification(stripFences(text))
	if !ok {
		log.Warn().Str("reply", text).Msg("gemini identify reply rejected")
		return domain.Identification{Status: domain.IdentifyParseError}
	}
	if id.ProductName == nil {
		return domain.Identification{Status: domain.IdentifyUnrecognized, Result: id}
	}
	return domain.Identification{Status: domain.IdentifyOK, Result: id}
}

// CheaperAlternatives asks the model for substitutes and filters the reply
// to entries carrying both a name and an estimated price. On any failure, or
// when filtering leaves nothing, the deterministic local generator answers
// instead; the result's Source records which path produced it.
func (c *Client) CheaperAlternatives(ctx context.Context, p domain.Product) domain.Alternatives {
	if c.model == nil {
		return fallback(p)
	}
	c.gate.Wait()

	resp, err := c.model.GenerateContent(ctx, genai.Text(alternativesPrompt(p)))
	if err != nil {
		log.Warn().Err(err).Msg("gemini alternatives call failed")
		return fallback(p)
	}
	text := firstText(resp)
	if text == "" {
		return fallback(p)
	}

	var raw []domain.AIAlternative
	if err := json.Unmarshal([]byte(stripFences(text)), &raw); err != nil {
		log.Warn().Err(err).Msg("gemini alternatives reply rejected")
		return fallback(p)
	}
	items := raw[:0]
	for _, alt := range raw {
		if alt.Name != "" && alt.EstimatedPrice != "" {
			items = append(items, alt)
		}
	}
	if len(items) == 0 {
		return fallback(p)
	}
	return domain.Alternatives{Items: items, Source: domain.SourceAI}
}

func fallback(p domain.Product) domain.Alternatives {
	return domain.Alternatives{Items: FallbackAlternatives(p), Source: domain.SourceFallback}
}

func alternativesPrompt(p domain.Product) string {
	brand := p.Brand
	if brand == "" {
		brand = "Unknown Brand"
	}
	category := p.Category
	if category == "" {
		category = "General"
	}
	return fmt.Sprintf(`Find 3-5 cheaper alternatives for this product: %q by %s in category %q.
Return ONLY a JSON array with objects like:
[
  {
    "name": "Alternative Product",
    "brand": "Brand",
    "category": %q,
    "estimated_price": "$2.99",
    "original_price": "$4.99",
    "savings_percentage": 40,
    "reason": "why",
    "key_features": ["f1", "f2"],
    "where_to_find": "Walmart, Amazon",
    "confidence": 0.85,
    "alternative_type": "budget"
  }
]`, p.Name, brand, category, category)
}

// firstText extracts the first candidate's first text part; the model wraps
// its whole answer there.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return ""
	}
	if t, ok := cand.Content.Parts[0].(genai.Text); ok {
		return string(t)
	}
	return fmt.Sprintf("%v", cand.Content.Parts[0])
}

// stripFences removes the markdown code-fence wrapping the model puts around
// JSON payloads.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// parseIdentification validates the reply shape before trusting it: it must
// be a JSON object whose confidence field is a number >= 0. Unknown shapes
// are rejected, not guessed at.
func parseIdentification(s string) (*domain.AIProductIdentification, bool) {
	var rawMap map[string]any
	if err := json.Unmarshal([]byte(s), &rawMap); err != nil {
		return nil, false
	}
	conf, ok := rawMap["confidence"].(float64)
	if !ok || conf < 0 {
		return nil, false
	}
	var id domain.AIProductIdentification
	if err := json.Unmarshal([]byte(s), &id); err != nil {
		return nil, false
	}
	return &id, true
}
