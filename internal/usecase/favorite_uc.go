package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/SahanLerners/scangenie-api/internal/domain"
)

// FavoriteUC manages user favorites. Products are stored as snapshots; a
// favorite never changes after it is written.
type FavoriteUC struct {
	Favorites domain.FavoriteRepo
}

func (uc *FavoriteUC) Add(ctx context.Context, userID string, p domain.Product) (string, error) {
	if strings.TrimSpace(p.Name) == "" {
		return "", errors.New("product name required")
	}
	return uc.Favorites.Add(ctx, userID, domain.Normalize(p, domain.TagLocal, time.Now()))
}

func (uc *FavoriteUC) Remove(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("favorite id required")
	}
	return uc.Favorites.Remove(ctx, id)
}

func (uc *FavoriteUC) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	return uc.Favorites.ListByUser(ctx, userID)
}
