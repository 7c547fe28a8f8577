package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/SahanLerners/scangenie-api/internal/domain"
)

// SuggestUC sources cheaper alternatives for a product. The result always
// carries a usable list; Source tells callers whether the model or the local
// generator produced it.
type SuggestUC struct {
	AI domain.Identifier
}

func (uc *SuggestUC) Alternatives(ctx context.Context, p domain.Product) (domain.Alternatives, error) {
	if strings.TrimSpace(p.Name) == "" {
		return domain.Alternatives{}, errors.New("product name required")
	}
	p = domain.Normalize(p, domain.TagLocal, time.Now())
	return uc.AI.CheaperAlternatives(ctx, p), nil
}
