package orderrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/order"
	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker records the orders written through a unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a committed order. Orders without a record ID are rejected.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := aggregate.RecordID().Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.RecordID(), aggregate)
	return nil
}

// UpdateStatus changes the most recent order carrying number. Order numbers
// repeat over time, so older orders with the same number keep their status.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, number string, status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	var dto OrderDTO
	if err := r.latest(ctx, "number = ?", number).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("order", number)
		}
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Update("status", status.String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", number)
	}
	return nil
}

func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	var dto OrderDTO
	if err := r.latest(ctx, "number = ?", number).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", number)
		}
		return nil, err
	}
	return toDomain(dto)
}

func (r *GormOrderRepository) GetLatestByPhone(ctx context.Context, phone kernel.Phone) (*order.Order, error) {
	if phone.IsZero() {
		return nil, errs.NewValueIsRequiredError("phone")
	}

	var dto OrderDTO
	if err := r.latest(ctx, "phone = ?", phone.String()).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", phone.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// CountActiveByPhone counts orders from phone that are not ready yet.
func (r *GormOrderRepository) CountActiveByPhone(ctx context.Context, phone kernel.Phone) (int, error) {
	if phone.IsZero() {
		return 0, nil
	}

	var n int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("phone = ? AND status <> ?", phone.String(), order.Ready.String()).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *GormOrderRepository) ListInProgress(ctx context.Context, limit int) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.latest(ctx, "status <> ?", order.Ready.String()).
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *GormOrderRepository) latest(ctx context.Context, query string, args ...any) *gorm.DB {
	return r.db.WithContext(ctx).Where(query, args...).Order("created_at DESC").Order("saved_at DESC")
}
