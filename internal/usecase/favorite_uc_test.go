package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SahanLerners/scangenie-api/internal/domain"
)

type fakeFavoriteRepo struct {
	favs []domain.Favorite
	seq  int
}

func (f *fakeFavoriteRepo) Add(ctx context.Context, userID string, p domain.Product) (string, error) {
	f.seq++
	id := fmt.Sprintf("fav-%d", f.seq)
	f.favs = append(f.favs, domain.Favorite{UserID: userID, Product: p, AddedAt: time.Now()})
	return id, nil
}

func (f *fakeFavoriteRepo) Remove(ctx context.Context, id string) error {
	for i := range f.favs {
		if fmt.Sprintf("fav-%d", i+1) == id {
			f.favs = append(f.favs[:i], f.favs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeFavoriteRepo) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	out := []domain.Favorite{}
	for _, fav := range f.favs {
		if fav.UserID == userID {
			out = append(out, fav)
		}
	}
	return out, nil
}

func TestFavoriteAddRemoveList(t *testing.T) {
	repo := &fakeFavoriteRepo{}
	uc := &FavoriteUC{Favorites: repo}
	ctx := context.Background()

	id, err := uc.Add(ctx, "u1", domain.Product{Name: "Nutella", Barcode: "3017620422003"})
	if err != nil {
		t.Fatal(err)
	}

	favs, _ := uc.List(ctx, "u1")
	if len(favs) != 1 {
		t.Fatalf("favorites = %d", len(favs))
	}
	if favs[0].Product.Ingredients == nil {
		t.Error("stored product not normalized")
	}

	if err := uc.Remove(ctx, id); err != nil {
		t.Fatal(err)
	}
	favs, _ = uc.List(ctx, "u1")
	if len(favs) != 0 {
		t.Fatalf("removed favorite still listed: %v", favs)
	}
}

func TestFavoriteAddRequiresName(t *testing.T) {
	uc := &FavoriteUC{Favorites: &fakeFavoriteRepo{}}
	if _, err := uc.Add(context.Background(), "u1", domain.Product{}); err == nil {
		t.Fatal("nameless product must be rejected before I/O")
	}
}

func TestSuggestAlternativesPassesSourceThrough(t *testing.T) {
	want := domain.Alternatives{
		Items:  []domain.AIAlternative{{Name: "Generic", EstimatedPrice: "$1.99"}},
		Source: domain.SourceFallback,
	}
	uc := &SuggestUC{AI: &fakeAI{alts: want}}

	got, err := uc.Alternatives(context.Background(), domain.Product{Name: "Choco Bar"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Source != domain.SourceFallback || len(got.Items) != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestSuggestAlternativesRequiresName(t *testing.T) {
	uc := &SuggestUC{AI: &fakeAI{}}
	if _, err := uc.Alternatives(context.Background(), domain.Product{}); err == nil {
		t.Fatal("nameless product must be rejected")
	}
}

func TestAnalyticsForUser(t *testing.T) {
	scans := &fakeScanRepo{}
	month := time.Now()
	for _, cat := range []string{"dairy", "dairy", "snack"} {
		scans.added = append(scans.added, domain.ScanRecord{
			UserID:    "u1",
			Product:   domain.Product{Category: cat},
			ScannedAt: month,
		})
	}
	favs := &fakeFavoriteRepo{}
	_, _ = favs.Add(context.Background(), "u1", domain.Product{Name: "Nutella"})

	uc := &AnalyticsUC{Scans: scans, Favorites: favs}
	a, err := uc.ForUser(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if a.TotalScans != 3 || a.FavoriteCount != 1 {
		t.Errorf("totals = %d/%d", a.TotalScans, a.FavoriteCount)
	}
	if a.CategoriesScanned["dairy"] != 2 || a.CategoriesScanned["snack"] != 1 {
		t.Errorf("categories = %v", a.CategoriesScanned)
	}
	if a.MonthlyScans[month.Format("2006-01")] != 3 {
		t.Errorf("monthly = %v", a.MonthlyScans)
	}
}
