package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/SahanLerners/scangenie-api/internal/domain"
)

// ScanState is the user-visible terminal state of a capture flow. No
// transition retries automatically; a failed step surfaces as a notice.
type ScanState string

const (
	StateFound         ScanState = "found"
	StateNotFound      ScanState = "not_found"
	StateIdentified    ScanState = "identified"
	StateNotIdentified ScanState = "not_identified"
	StateError         ScanState = "error"
)

// ScanUC drives the two capture flows: barcode scan and photo
// identification. Each flow runs its I/O sequentially and records the
// normalized product before returning.
type ScanUC struct {
	Source domain.ProductSource
	AI     domain.Identifier
	Scans  domain.ScanRepo
}

// ScanOutcome is the result of a barcode scan.
type ScanOutcome struct {
	State   ScanState       `json:"state"`
	Product *domain.Product `json:"product,omitempty"`
	ScanID  string          `json:"scanId,omitempty"`
}

// IdentifyOutcome is the result of a photo identification. Matched reports
// whether the identification resolved to a database product or the product
// was synthesized from the identification itself.
type IdentifyOutcome struct {
	State          ScanState                       `json:"state"`
	Identification *domain.AIProductIdentification `json:"identification,omitempty"`
	Matched        bool                            `json:"matched"`
	Product        *domain.Product                 `json:"product,omitempty"`
	ScanID         string                          `json:"scanId,omitempty"`
}

// ScanBarcode looks the code up, normalizes the hit and records it.
// A code the provider does not know is a normal not-found outcome.
func (uc *ScanUC) ScanBarcode(ctx context.Context, userID, barcode string) (*ScanOutcome, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, errors.New("empty barcode")
	}

	lookup := uc.Source.ProductByBarcode(ctx, barcode)
	switch lookup.Status {
	case domain.LookupNotFound:
		return &ScanOutcome{State: StateNotFound}, nil
	case domain.LookupFailed:
		return &ScanOutcome{State: StateError}, nil
	}

	p := domain.Normalize(*lookup.Product, domain.TagSearch, time.Now())
	return &ScanOutcome{
		State:   StateFound,
		Product: &p,
		ScanID:  uc.record(ctx, userID, p),
	}, nil
}

// IdentifyPhoto runs the AI flow: identify, then attempt a database match on
// the identified name, then normalize and record whichever product results.
func (uc *ScanUC) IdentifyPhoto(ctx context.Context, userID string, image []byte) (*IdentifyOutcome, error) {
	if len(image) == 0 {
		return nil, errors.New("empty image")
	}

	ident := uc.AI.IdentifyImage(ctx, image)
	switch ident.Status {
	case domain.IdentifyUnavailable, domain.IdentifyParseError:
		return &IdentifyOutcome{State: StateError}, nil
	case domain.IdentifyUnrecognized:
		return &IdentifyOutcome{State: StateNotIdentified, Identification: ident.Result}, nil
	}

	ai := ident.Result
	matches := uc.Source.SearchByName(ctx, *ai.ProductName, ai.Category)

	var p domain.Product
	matched := len(matches) > 0
	if matched {
		p = domain.Normalize(matches[0], domain.TagSearch, time.Now())
	} else {
		p = domain.FromIdentification(*ai, time.Now())
	}

	return &IdentifyOutcome{
		State:          StateIdentified,
		Identification: ai,
		Matched:        matched,
		Product:        &p,
		ScanID:         uc.record(ctx, userID, p),
	}, nil
}

// History returns the user's scans, newest first.
func (uc *ScanUC) History(ctx context.Context, userID string, limit int) ([]domain.ScanRecord, error) {
	return uc.Scans.ListByUser(ctx, userID, limit)
}

// FullHistory returns every scan the user ever made, newest first.
func (uc *ScanUC) FullHistory(ctx context.Context, userID string) ([]domain.ScanRecord, error) {
	return uc.Scans.ListAllByUser(ctx, userID)
}

// record writes the scan; a failed write does not abort the flow, the user
// still gets the product and the history stays merely incomplete.
func (uc *ScanUC) record(ctx context.Context, userID string, p domain.Product) string {
	id, err := uc.Scans.Add(ctx, userID, p)
	if err != nil {
		log.Warn().Err(err).Str("user", userID).Msg("scan history write failed")
		return ""
	}
	return id
}
