package usecase

import (
	"context"

	"github.com/SahanLerners/scangenie-api/internal/domain"
)

// AnalyticsUC derives a user's aggregates from their complete stored
// history. No incremental counters, no caching; both sets are fetched and
// folded on every request.
type AnalyticsUC struct {
	Scans     domain.ScanRepo
	Favorites domain.FavoriteRepo
}

func (uc *AnalyticsUC) ForUser(ctx context.Context, userID string) (domain.UserAnalytics, error) {
	scans, err := uc.Scans.ListAllByUser(ctx, userID)
	if err != nil {
		return domain.UserAnalytics{}, err
	}
	favs, err := uc.Favorites.ListByUser(ctx, userID)
	if err != nil {
		return domain.UserAnalytics{}, err
	}
	return domain.ComputeAnalytics(scans, len(favs)), nil
}
