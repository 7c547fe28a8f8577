package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SahanLerners/scangenie-api/internal/domain"
)

type FavoriteRepo struct{ db *gorm.DB }

func NewFavoriteRepo(db *gorm.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

func (r *FavoriteRepo) Add(ctx context.Context, userID string, p domain.Product) (string, error) {
	fav := domain.Favorite{ID: uuid.New(), UserID: userID, Product: p}
	err := r.db.WithContext(ctx).
		Omit("AddedAt").
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "added_at"}}}).
		Create(&fav).Error
	if err != nil {
		return "", err
	}
	return fav.ID.String(), nil
}

func (r *FavoriteRepo) Remove(ctx context.Context, id string) error {
	fid, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res := r.db.WithContext(ctx).Delete(&domain.Favorite{}, "id = ?", fid)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *FavoriteRepo) ListByUser(ctx context.Context, userID string) ([]domain.Favorite, error) {
	list := []domain.Favorite{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at desc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
