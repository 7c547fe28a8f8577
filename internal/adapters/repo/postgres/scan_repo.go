package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SahanLerners/scangenie-api/internal/domain"
)

const defaultHistoryLimit = 50

type ScanRepo struct{ db *gorm.DB }

func NewScanRepo(db *gorm.DB) *ScanRepo { return &ScanRepo{db: db} }

// Add records a scan with the product embedded by value. ScannedAt is left
// to the database server so ordering stays consistent across devices.
func (r *ScanRepo) Add(ctx context.Context, userID string, p domain.Product) (string, error) {
	rec := domain.ScanRecord{ID: uuid.New(), UserID: userID, Product: p}
	err := r.db.WithContext(ctx).
		Omit("ScannedAt").
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "scanned_at"}}}).
		Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID.String(), nil
}

// ListByUser returns the user's scans newest first. limit <= 0 applies the
// default of 50; analytics bypasses the limit through ListAllByUser.
func (r *ScanRepo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.ScanRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	list := []domain.ScanRecord{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("scanned_at desc").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListAllByUser returns the complete history, newest first. Cost is linear
// in history size; analytics recomputes from it on every request.
func (r *ScanRepo) ListAllByUser(ctx context.Context, userID string) ([]domain.ScanRecord, error) {
	list := []domain.ScanRecord{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("scanned_at desc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
