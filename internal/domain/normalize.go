package domain

import (
	"fmt"
	"strings"
	"time"
)

// Source tags prepended to synthesized ids so a product's origin stays
// visible after the fact.
const (
	TagAI     = "ai_"
	TagLocal  = "local_"
	TagSearch = "search_"
)

// SplitList turns a comma-joined string into a trimmed list, dropping empty
// segments. Upstream sources encode ingredient and allergen lists this way.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// flattenList re-splits every element on commas so a list that arrived as a
// single comma-joined entry still comes out itemized. Never returns nil.
func flattenList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		out = append(out, SplitList(v)...)
	}
	return out
}

// Normalize maps any raw or partial product payload to the canonical form:
// every optional field defaulted, list fields materialized, id synthesized
// from now plus the source tag when the payload carries none. It is
// idempotent; normalizing an already-canonical Product returns an equal one.
func Normalize(p Product, tag string, now time.Time) Product {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		p.Name = "Unknown Product"
	}
	if p.Brand != "" {
		p.Brand = strings.TrimSpace(strings.SplitN(p.Brand, ",", 2)[0])
	}
	p.Category = strings.TrimSpace(p.Category)
	if p.Category == "" {
		p.Category = "Unknown"
	} else {
		p.Category = strings.TrimSpace(strings.SplitN(p.Category, ",", 2)[0])
	}
	p.NutritionGrade = strings.ToLower(strings.TrimSpace(p.NutritionGrade))

	p.Ingredients = flattenList(p.Ingredients)
	p.Allergens = flattenList(p.Allergens)

	if p.ID == "" {
		if p.Barcode != "" {
			p.ID = p.Barcode
		} else {
			p.ID = fmt.Sprintf("%s%d", tag, now.UnixMilli())
			p.Barcode = p.ID
		}
	}
	if p.ScannedAt.IsZero() {
		p.ScannedAt = now
	}
	return p
}

// FromIdentification seeds a Product from an AI identification when no
// database match exists. The identification's key features take the
// ingredients slot; there is nothing better to show.
func FromIdentification(ai AIProductIdentification, now time.Time) Product {
	name := ""
	if ai.ProductName != nil {
		name = *ai.ProductName
	}
	return Normalize(Product{
		Name:        name,
		Brand:       ai.Brand,
		Category:    ai.Category,
		Ingredients: ai.KeyFeatures,
	}, TagAI, now)
}
