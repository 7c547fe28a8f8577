package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SahanLerners/scangenie-api/internal/domain"
	"github.com/SahanLerners/scangenie-api/internal/usecase"
)

type stubSource struct {
	lookup domain.BarcodeLookup
	search []domain.Product
}

func (s *stubSource) ProductByBarcode(ctx context.Context, barcode string) domain.BarcodeLookup {
	return s.lookup
}

func (s *stubSource) SearchByName(ctx context.Context, name, category string) []domain.Product {
	return s.search
}

type stubAI struct{}

func (stubAI) IdentifyImage(ctx context.Context, image []byte) domain.Identification {
	return domain.Identification{Status: domain.IdentifyUnavailable}
}

func (stubAI) CheaperAlternatives(ctx context.Context, p domain.Product) domain.Alternatives {
	return domain.Alternatives{Items: []domain.AIAlternative{}, Source: domain.SourceFallback}
}

type stubScanRepo struct{ recs []domain.ScanRecord }

func (s *stubScanRepo) Add(ctx context.Context, userID string, p domain.Product) (string, error) {
	s.recs = append(s.recs, domain.ScanRecord{UserID: userID, Product: p, ScannedAt: time.Now()})
	return "scan-1", nil
}

func (s *stubScanRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.ScanRecord, error) {
	return s.recs, nil
}

func (s *stubScanRepo) ListAllByUser(ctx context.Context, userID string) ([]domain.ScanRecord, error) {
	return s.recs, nil
}

type stubFavRepo struct{ removed []string }

func (s *stubFavRepo) Add(ctx context.Context, userID string, p domain.Product) (string, error) {
	return "fav-1", nil
}

func (s *stubFavRepo) Remove(ctx context.Context, id string) error {
	if id == "missing" {
		return domain.ErrNotFound
	}
	s.removed = append(s.removed, id)
	return nil
}

func (s *stubFavRepo) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	return []domain.Favorite{}, nil
}

type stubFlagRepo struct{ flags map[string]domain.UserFlag }

func (s *stubFlagRepo) Get(ctx context.Context, userID string) (domain.UserFlag, error) {
	return s.flags[userID], nil
}

func (s *stubFlagRepo) Set(ctx context.Context, f domain.UserFlag) error {
	s.flags[f.UserID] = f
	return nil
}

func testServer(src domain.ProductSource) (http.Handler, *stubFavRepo, *stubFlagRepo) {
	scans := &stubScanRepo{}
	favs := &stubFavRepo{}
	flags := &stubFlagRepo{flags: map[string]domain.UserFlag{}}
	scanUC := &usecase.ScanUC{Source: src, AI: stubAI{}, Scans: scans}
	h := New(
		scanUC,
		&usecase.SuggestUC{AI: stubAI{}},
		&usecase.FavoriteUC{Favorites: favs},
		&usecase.AnalyticsUC{Scans: scans, Favorites: favs},
		src,
		flags,
	)
	return h, favs, flags
}

func TestRequiresUserHeader(t *testing.T) {
	h, _, _ := testServer(&stubSource{})
	req := httptest.NewRequest(http.MethodPost, "/api/scan", strings.NewReader(`{"barcode":"1"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 without X-User-ID", rec.Code)
	}
}

func TestScanEndpointFound(t *testing.T) {
	p := domain.Product{ID: "3017620422003", Name: "Nutella"}
	h, _, _ := testServer(&stubSource{lookup: domain.BarcodeLookup{Status: domain.LookupFound, Product: &p}})

	req := httptest.NewRequest(http.MethodPost, "/api/scan", strings.NewReader(`{"barcode":"3017620422003"}`))
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var out usecase.ScanOutcome
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.State != usecase.StateFound || out.Product == nil || out.Product.Name != "Nutella" {
		t.Errorf("outcome = %+v", out)
	}
}

func TestScanEndpointEmptyBarcode(t *testing.T) {
	h, _, _ := testServer(&stubSource{})
	req := httptest.NewRequest(http.MethodPost, "/api/scan", strings.NewReader(`{"barcode":""}`))
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 before any I/O", rec.Code)
	}
}

func TestFavoriteDelete(t *testing.T) {
	h, favs, _ := testServer(&stubSource{})

	req := httptest.NewRequest(http.MethodDelete, "/api/favorites/fav-1", nil)
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(favs.removed) != 1 || favs.removed[0] != "fav-1" {
		t.Errorf("removed = %v", favs.removed)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/favorites/missing", nil)
	req.Header.Set("X-User-ID", "u1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for unknown id", rec.Code)
	}
}

func TestOnboardingRoundTrip(t *testing.T) {
	h, _, _ := testServer(&stubSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/onboarding", nil)
	req.Header.Set("X-User-ID", "u1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), `"onboardingDone":false`) {
		t.Fatalf("fresh user body = %s", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPut, "/api/onboarding", strings.NewReader(`{"onboardingDone":true}`))
	req.Header.Set("X-User-ID", "u1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/onboarding", nil)
	req.Header.Set("X-User-ID", "u1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), `"onboardingDone":true`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}
