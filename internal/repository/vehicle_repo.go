package repository

import (
	"context"
	"time"

	"altoev/internal/domain"

	"gorm.io/gorm"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

type vehicleModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	CarName    string    `gorm:"column:car_name"`
	Year       int       `gorm:"column:year"`
	Make       string    `gorm:"column:make"`
	Model      string    `gorm:"column:model"`
	VIN        string    `gorm:"column:vin;uniqueIndex"`
	DailyPrice float64   `gorm:"column:daily_price"`
	Status     string    `gorm:"column:status"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (vehicleModel) TableName() string { return "vehicles" }

func toDomainVehicle(m vehicleModel) domain.Vehicle {
	return domain.Vehicle{
		ID:         m.ID,
		CarName:    m.CarName,
		Year:       m.Year,
		Make:       m.Make,
		Model:      m.Model,
		VIN:        m.VIN,
		DailyPrice: m.DailyPrice,
		Status:     domain.VehicleStatus(m.Status),
		CreatedAt:  m.CreatedAt,
	}
}

func (r *VehicleRepository) GetActive(ctx context.Context) ([]domain.Vehicle, error) {
	var rows []vehicleModel
	tx := r.db.WithContext(ctx).
		Where("status = ?", string(domain.VehicleActive)).
		Order("daily_price ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Vehicle, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainVehicle(m))
	}
	return out, nil
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	m := vehicleModel{
		CarName:    v.CarName,
		Year:       v.Year,
		Make:       v.Make,
		Model:      v.Model,
		VIN:        v.VIN,
		DailyPrice: v.DailyPrice,
		Status:     string(v.Status),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	v.ID = m.ID
	v.CreatedAt = m.CreatedAt
	return nil
}
