// Package orderrepo maps committed orders to the orders table and back.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/cart"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/order"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/pricing"
)

// OrderDTO is one committed order. Items, pricing and charges are stored as
// JSON documents; Flavors duplicates the item names so the kitchen can filter
// without unpacking the items column.
type OrderDTO struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Number    string            `gorm:"type:char(4);index"`
	Items     []cart.Item       `gorm:"type:jsonb;serializer:json"`
	Flavors   pq.StringArray    `gorm:"type:text[]"`
	Phone     string            `gorm:"type:varchar(16);index"`
	Address   string            `gorm:"type:text"`
	OrderType string            `gorm:"type:varchar(16)"`
	Status    string            `gorm:"type:varchar(32);index"`
	Pricing   pricing.Breakdown `gorm:"type:jsonb;serializer:json"`
	Charges   *pricing.Charges  `gorm:"type:jsonb;serializer:json"`
	CreatedAt time.Time         `gorm:"index"`
	SavedAt   time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	items := o.Items()
	flavors := make(pq.StringArray, 0, len(items))
	for _, it := range items {
		flavors = append(flavors, it.Item)
	}

	dto := OrderDTO{
		ID:        o.RecordID().Bytes(),
		Number:    o.Number(),
		Items:     items,
		Flavors:   flavors,
		Phone:     o.Phone().String(),
		Address:   o.Address(),
		OrderType: o.OrderType().String(),
		Status:    o.Status().String(),
		Pricing:   o.Pricing(),
		CreatedAt: o.CreatedAt(),
		SavedAt:   o.SavedAt(),
	}
	if charges, ok := o.Charges(); ok {
		dto.Charges = &charges
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	// Stored phones were normalized on the way in; an unparseable one is
	// restored as "no phone".
	phone, _ := kernel.NormalizePhone(dto.Phone)
	orderType, _ := kernel.ParseOrderType(dto.OrderType)

	return order.RestoreOrder(
		id,
		dto.Number,
		dto.Items,
		phone,
		dto.Address,
		orderType,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.SavedAt,
		dto.Pricing,
		dto.Charges,
	)
}
