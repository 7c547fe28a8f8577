package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// LookupStatus tags the outcome of a barcode lookup so callers can tell
// "there is no such product" from "the call failed".
type LookupStatus string

const (
	LookupFound    LookupStatus = "found"
	LookupNotFound LookupStatus = "not_found"
	LookupFailed   LookupStatus = "failed"
)

// BarcodeLookup is the result of an exact barcode query. Product is non-nil
// only when Status is LookupFound.
type BarcodeLookup struct {
	Status  LookupStatus
	Product *Product
}

// IdentifyStatus tags the outcome of an image identification request.
type IdentifyStatus string

const (
	// IdentifyOK means the model returned a usable identification.
	IdentifyOK IdentifyStatus = "ok"
	// IdentifyUnrecognized means the model answered but could not name the
	// product (product_name was null).
	IdentifyUnrecognized IdentifyStatus = "unrecognized"
	// IdentifyParseError means the reply was not the JSON shape we require.
	IdentifyParseError IdentifyStatus = "parse_error"
	// IdentifyUnavailable means the model was not configured or the request
	// itself failed.
	IdentifyUnavailable IdentifyStatus = "unavailable"
)

// Identification is the tagged result of identifying a product from a photo.
// Result is non-nil only for IdentifyOK and IdentifyUnrecognized.
type Identification struct {
	Status IdentifyStatus
	Result *AIProductIdentification
}

// AlternativeSource records whether alternatives came from the model or from
// the deterministic local generator that substitutes for it.
type AlternativeSource string

const (
	SourceAI       AlternativeSource = "ai"
	SourceFallback AlternativeSource = "fallback"
)

// Alternatives is a ranked suggestion list plus its provenance. Items is
// never nil; when the model fails or returns nothing usable the fallback
// generator fills it and Source says so.
type Alternatives struct {
	Items  []AIAlternative   `json:"items"`
	Source AlternativeSource `json:"source"`
}

// ProductSource resolves products against the public food database. Both
// operations absorb transient failures: a lookup reports LookupFailed and a
// search returns an empty slice, never an error.
type ProductSource interface {
	ProductByBarcode(ctx context.Context, barcode string) BarcodeLookup
	SearchByName(ctx context.Context, name, category string) []Product
}

// Identifier is the AI endpoint: image identification and alternative
// sourcing. Neither operation surfaces raw upstream errors.
type Identifier interface {
	IdentifyImage(ctx context.Context, image []byte) Identification
	CheaperAlternatives(ctx context.Context, p Product) Alternatives
}

// ScanRepo records scans against a user. Listing is newest first; limit <= 0
// falls back to the default page of 50. Analytics uses ListAllByUser, which
// returns the complete history.
type ScanRepo interface {
	Add(ctx context.Context, userID string, p Product) (string, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]ScanRecord, error)
	ListAllByUser(ctx context.Context, userID string) ([]ScanRecord, error)
}

// FavoriteRepo manages user favorites, newest first.
type FavoriteRepo interface {
	Add(ctx context.Context, userID string, p Product) (string, error)
	Remove(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]Favorite, error)
}

// FlagRepo stores per-user flags. Get returns a zero-valued flag for unknown
// users rather than ErrNotFound.
type FlagRepo interface {
	Get(ctx context.Context, userID string) (UserFlag, error)
	Set(ctx context.Context, flag UserFlag) error
}
