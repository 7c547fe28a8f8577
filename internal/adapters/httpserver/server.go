package httpserver

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/SahanLerners/scangenie-api/internal/domain"
	"github.com/SahanLerners/scangenie-api/internal/usecase"
)

// Server exposes the scan pipeline as a JSON API. Identity arrives in the
// X-User-ID header from the upstream identity proxy; this service does no
// authentication of its own.
type Server struct {
	mux   *http.ServeMux
	scans *usecase.ScanUC

	suggest   *usecase.SuggestUC
	favorites *usecase.FavoriteUC
	analytics *usecase.AnalyticsUC
	source    domain.ProductSource
	flags     domain.FlagRepo
}

func New(scans *usecase.ScanUC, suggest *usecase.SuggestUC, favorites *usecase.FavoriteUC, analytics *usecase.AnalyticsUC, source domain.ProductSource, flags domain.FlagRepo) http.Handler {
	s := &Server{
		mux:       http.NewServeMux(),
		scans:     scans,
		suggest:   suggest,
		favorites: favorites,
		analytics: analytics,
		source:    source,
		flags:     flags,
	}
	s.routes()
	return Chain(s.mux,
		RateLimit(60),
		RequestID,
		Recovery,
		Logging,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]string{"status": "ok"})
	})

	s.mux.HandleFunc("/api/scan", s.apiScan)
	s.mux.HandleFunc("/api/identify", s.apiIdentify)
	s.mux.HandleFunc("/api/products/search", s.apiSearch)
	s.mux.HandleFunc("/api/alternatives", s.apiAlternatives)
	s.mux.HandleFunc("/api/favorites", s.apiFavorites)
	s.mux.HandleFunc("/api/favorites/", s.apiFavoriteByID)
	s.mux.HandleFunc("/api/scans", s.apiScanHistory)
	s.mux.HandleFunc("/api/scans/export", s.apiScanExport)
	s.mux.HandleFunc("/api/analytics", s.apiAnalytics)
	s.mux.HandleFunc("/api/onboarding", s.apiOnboarding)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// userID pulls the caller identity; requests without one are rejected before
// touching any usecase.
func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if uid == "" {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return "", false
	}
	return uid, true
}

func (s *Server) apiScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req struct {
		Barcode string `json:"barcode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "json", http.StatusBadRequest)
		return
	}
	out, err := s.scans.ScanBarcode(r.Context(), uid, req.Barcode)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, 200, out)
}

func (s *Server) apiIdentify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "json", http.StatusBadRequest)
		return
	}
	image, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil || len(image) == 0 {
		http.Error(w, "image must be base64", http.StatusBadRequest)
		return
	}
	out, err := s.scans.IdentifyPhoto(r.Context(), uid, image)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, 200, out)
}

func (s *Server) apiSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}
	products := s.source.SearchByName(r.Context(), name, r.URL.Query().Get("category"))
	writeJSON(w, 200, map[string]any{"items": products, "total": len(products)})
}

func (s *Server) apiAlternatives(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := userID(w, r); !ok {
		return
	}
	var req struct {
		Product domain.Product `json:"product"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "json", http.StatusBadRequest)
		return
	}
	alts, err := s.suggest.Alternatives(r.Context(), req.Product)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, 200, alts)
}

func (s *Server) apiFavorites(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		favs, err := s.favorites.List(r.Context(), uid)
		if err != nil {
			http.Error(w, "list", http.StatusInternalServerError)
			return
		}
		writeJSON(w, 200, map[string]any{"items": favs, "total": len(favs)})
	case http.MethodPost:
		var req struct {
			Product domain.Product `json:"product"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "json", http.StatusBadRequest)
			return
		}
		id, err := s.favorites.Add(r.Context(), uid, req.Product)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, 201, map[string]string{"id": id})
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}

func (s *Server) apiFavoriteByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	if _, ok := userID(w, r); !ok {
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/favorites/")
	if err := s.favorites.Remove(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		http.Error(w, "remove", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) apiScanHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	scans, err := s.scans.History(r.Context(), uid, limit)
	if err != nil {
		http.Error(w, "history", http.StatusInternalServerError)
		return
	}
	writeJSON(w, 200, map[string]any{"items": scans, "total": len(scans)})
}

func (s *Server) apiAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	a, err := s.analytics.ForUser(r.Context(), uid)
	if err != nil {
		http.Error(w, "analytics", http.StatusInternalServerError)
		return
	}
	writeJSON(w, 200, a)
}

func (s *Server) apiOnboarding(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		f, err := s.flags.Get(r.Context(), uid)
		if err != nil {
			http.Error(w, "flags", http.StatusInternalServerError)
			return
		}
		writeJSON(w, 200, map[string]bool{"onboardingDone": f.OnboardingDone})
	case http.MethodPut:
		var req struct {
			OnboardingDone bool `json:"onboardingDone"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "json", http.StatusBadRequest)
			return
		}
		if err := s.flags.Set(r.Context(), domain.UserFlag{UserID: uid, OnboardingDone: req.OnboardingDone}); err != nil {
			http.Error(w, "flags", http.StatusInternalServerError)
			return
		}
		writeJSON(w, 200, map[string]bool{"onboardingDone": req.OnboardingDone})
	default:
		http.Error(w, "method", http.StatusMethodNotAllowed)
	}
}
