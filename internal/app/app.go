package app

import (
	"context"
	"net/http"
	"os"

	"gorm.io/gorm"

	"github.com/SahanLerners/scangenie-api/internal/adapters/gemini"
	"github.com/SahanLerners/scangenie-api/internal/adapters/httpserver"
	"github.com/SahanLerners/scangenie-api/internal/adapters/openfoodfacts"
	"github.com/SahanLerners/scangenie-api/internal/adapters/repo/postgres"
	"github.com/SahanLerners/scangenie-api/internal/domain"
	"github.com/SahanLerners/scangenie-api/internal/usecase"
)

type App struct {
	DB          *gorm.DB
	ScanUC      *usecase.ScanUC
	SuggestUC   *usecase.SuggestUC
	FavoriteUC  *usecase.FavoriteUC
	AnalyticsUC *usecase.AnalyticsUC
	Source      domain.ProductSource
	Flags       domain.FlagRepo
}

func NewApp(ctx context.Context, db *gorm.DB) (*App, error) {
	scanRepo := postgres.NewScanRepo(db)
	favRepo := postgres.NewFavoriteRepo(db)
	flagRepo := postgres.NewFlagRepo(db)

	source := openfoodfacts.NewClient(os.Getenv("OFF_BASE_URL"))

	ai := gemini.NewClient(ctx, gemini.Config{
		ProjectID:       os.Getenv("GOOGLE_PROJECT_ID"),
		Location:        os.Getenv("GOOGLE_LOCATION"),
		CredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		Model:           os.Getenv("GEMINI_MODEL"),
	})

	app := &App{DB: db}
	app.ScanUC = &usecase.ScanUC{Source: source, AI: ai, Scans: scanRepo}
	app.SuggestUC = &usecase.SuggestUC{AI: ai}
	app.FavoriteUC = &usecase.FavoriteUC{Favorites: favRepo}
	app.AnalyticsUC = &usecase.AnalyticsUC{Scans: scanRepo, Favorites: favRepo}
	app.Source = source
	app.Flags = flagRepo
	return app, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.ScanUC, a.SuggestUC, a.FavoriteUC, a.AnalyticsUC, a.Source, a.Flags)
}

func (a *App) Migrate() error {
	if err := a.DB.AutoMigrate(
		&domain.ScanRecord{}, &domain.Favorite{}, &domain.UserFlag{},
	); err != nil {
		return err
	}

	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_scan_records_user_scanned ON scan_records(user_id, scanned_at DESC)").Error
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_favorites_user_added ON favorites(user_id, added_at DESC)").Error

	return nil
}
