package repository

import (
	"context"
	"errors"
	"time"

	"altoev/internal/domain"

	"gorm.io/gorm"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID            int64      `gorm:"column:id;primaryKey"`
	ReservationID string     `gorm:"column:reservation_id;uniqueIndex"`
	RentalDates   string     `gorm:"column:rental_dates"`
	StartDateTime *time.Time `gorm:"column:start_date_time"`
	EndDateTime   *time.Time `gorm:"column:end_date_time"`
	VehicleModel  string     `gorm:"column:vehicle_model"`
	VehicleNumber string     `gorm:"column:vehicle_number"`
	CustomerName  string     `gorm:"column:customer_name"`
	CustomerPhone string     `gorm:"column:customer_phone"`
	ReceivedDate  time.Time  `gorm:"column:received_date"`
	RawContent    string     `gorm:"column:raw_content;type:text"`
	Status        string     `gorm:"column:status"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (reservationModel) TableName() string { return "reservations" }

func toDomainReservation(m reservationModel) *domain.Reservation {
	return &domain.Reservation{
		ID:            m.ID,
		ReservationID: m.ReservationID,
		RentalDates:   m.RentalDates,
		StartDateTime: m.StartDateTime,
		EndDateTime:   m.EndDateTime,
		VehicleModel:  m.VehicleModel,
		VehicleNumber: m.VehicleNumber,
		CustomerName:  m.CustomerName,
		CustomerPhone: m.CustomerPhone,
		ReceivedDate:  m.ReceivedDate,
		RawContent:    m.RawContent,
		Status:        domain.ReservationStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toReservationModel(r *domain.Reservation) reservationModel {
	return reservationModel{
		ID:            r.ID,
		ReservationID: r.ReservationID,
		RentalDates:   r.RentalDates,
		StartDateTime: r.StartDateTime,
		EndDateTime:   r.EndDateTime,
		VehicleModel:  r.VehicleModel,
		VehicleNumber: r.VehicleNumber,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		ReceivedDate:  r.ReceivedDate,
		RawContent:    r.RawContent,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	m := toReservationModel(res)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*res = *toDomainReservation(m)
	return nil
}

// GetByReservationID looks up a record by the platform-assigned reservation
// id. Returns (nil, nil) when no record exists.
func (r *ReservationRepository) GetByReservationID(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).Where("reservation_id = ?", reservationID).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainReservation(m), nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, tx.Error
	}
	return toDomainReservation(m), nil
}

func (r *ReservationRepository) GetAll(ctx context.Context) ([]domain.Reservation, error) {
	var rows []reservationModel
	tx := r.db.WithContext(ctx).Order("received_date DESC").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

// Update overwrites every tracked field of the record matched by
// reservation_id. Status is deliberately left alone so a re-observed
// booking email cannot reset a record the sweep already advanced.
func (r *ReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("reservation_id = ?", res.ReservationID).
		Updates(map[string]any{
			"rental_dates":    res.RentalDates,
			"start_date_time": res.StartDateTime,
			"end_date_time":   res.EndDateTime,
			"vehicle_model":   res.VehicleModel,
			"vehicle_number":  res.VehicleNumber,
			"customer_name":   res.CustomerName,
			"customer_phone":  res.CustomerPhone,
			"raw_content":     res.RawContent,
			"updated_at":      time.Now(),
		})
	return tx.Error
}

// UpdateDates overwrites only the rental bounds, for Change events.
func (r *ReservationRepository) UpdateDates(ctx context.Context, reservationID string, start, end time.Time) error {
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("reservation_id = ?", reservationID).
		Updates(map[string]any{
			"start_date_time": start,
			"end_date_time":   end,
			"updated_at":      time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateStatusByReservationID sets the status of the record matched by the
// platform reservation id. Returns gorm.ErrRecordNotFound when no row matched.
func (r *ReservationRepository) UpdateStatusByReservationID(ctx context.Context, reservationID string, status domain.ReservationStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("reservation_id = ?", reservationID).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateStatusByID sets the status of the record matched by the
// store-assigned id. Used by the manual override path in the REST layer.
func (r *ReservationRepository) UpdateStatusByID(ctx context.Context, id int64, status domain.ReservationStatus) error {
	tx := r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetActiveForSweep returns records the lifecycle sweep may still advance:
// non-terminal status and both rental bounds present.
func (r *ReservationRepository) GetActiveForSweep(ctx context.Context) ([]domain.Reservation, error) {
	var rows []reservationModel
	tx := r.db.WithContext(ctx).
		Where("status IN ?", []string{
			string(domain.StatusBooked),
			string(domain.StatusOngoing),
			string(domain.StatusValid),
		}).
		Where("start_date_time IS NOT NULL AND end_date_time IS NOT NULL").
		Order("start_date_time ASC").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}
