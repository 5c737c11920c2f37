package repository

import (
	"context"
	"time"

	"altoev/internal/domain"

	"gorm.io/gorm"
)

type WizardNumberRepository struct {
	db *gorm.DB
}

func NewWizardNumberRepository(db *gorm.DB) *WizardNumberRepository {
	return &WizardNumberRepository{db: db}
}

type wizardNumberModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Number    string    `gorm:"column:number;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (wizardNumberModel) TableName() string { return "wizard_numbers" }

func (r *WizardNumberRepository) Exists(ctx context.Context, number string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&wizardNumberModel{}).
		Where("number = ?", number).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *WizardNumberRepository) Create(ctx context.Context, n *domain.WizardNumber) error {
	m := wizardNumberModel{Number: n.Number}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	n.ID = m.ID
	n.CreatedAt = m.CreatedAt
	return nil
}
