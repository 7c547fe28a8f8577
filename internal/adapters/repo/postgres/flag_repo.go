package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SahanLerners/scangenie-api/internal/domain"
)

type FlagRepo struct{ db *gorm.DB }

func NewFlagRepo(db *gorm.DB) *FlagRepo { return &FlagRepo{db: db} }

// Get returns a zero-valued flag for users that have none yet; a missing row
// just means onboarding has not completed.
func (r *FlagRepo) Get(ctx context.Context, userID string) (domain.UserFlag, error) {
	var f domain.UserFlag
	err := r.db.WithContext(ctx).First(&f, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserFlag{UserID: userID}, nil
		}
		return domain.UserFlag{}, err
	}
	return f, nil
}

func (r *FlagRepo) Set(ctx context.Context, flag domain.UserFlag) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"onboarding_done", "updated_at"}),
		}).
		Create(&flag).Error
}
