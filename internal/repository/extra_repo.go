package repository

import (
	"context"
	"time"

	"altoev/internal/domain"

	"gorm.io/gorm"
)

type ExtraRepository struct {
	db *gorm.DB
}

func NewExtraRepository(db *gorm.DB) *ExtraRepository {
	return &ExtraRepository{db: db}
}

type extraModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex"`
	Price       float64   `gorm:"column:price"`
	PriceType   string    `gorm:"column:price_type"`
	Description string    `gorm:"column:description;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (extraModel) TableName() string { return "extras" }

func (r *ExtraRepository) GetAll(ctx context.Context) ([]domain.Extra, error) {
	var rows []extraModel
	tx := r.db.WithContext(ctx).Order("id ASC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Extra, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.Extra{
			ID:          m.ID,
			Name:        m.Name,
			Price:       m.Price,
			PriceType:   domain.ExtraPriceType(m.PriceType),
			Description: m.Description,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out, nil
}

func (r *ExtraRepository) Create(ctx context.Context, e *domain.Extra) error {
	m := extraModel{
		Name:        e.Name,
		Price:       e.Price,
		PriceType:   string(e.PriceType),
		Description: e.Description,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	e.ID = m.ID
	e.CreatedAt = m.CreatedAt
	return nil
}
