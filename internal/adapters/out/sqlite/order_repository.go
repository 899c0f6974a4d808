package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Shmhzr/ai-voice/internal/core/domain/model/cart"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/kernel"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/order"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/pricing"
	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
)

const orderColumns = `id, number, items, phone, address, order_type, status, pricing, charges, created_at, saved_at`

// Newest first; saved_at breaks ties between orders created in the same
// microsecond.
const newestFirst = ` ORDER BY created_at DESC, saved_at DESC`

// OrderRepository implements ports.OrderRepository. Timestamps are stored as
// Unix microseconds so that ordering is numeric.
type OrderRepository struct {
	q querier
}

func (r *OrderRepository) Add(ctx context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := o.RecordID().Validate(); err != nil {
		return err
	}

	items := o.Items()
	flavors := make([]string, 0, len(items))
	for _, it := range items {
		flavors = append(flavors, it.Item)
	}

	var charges any
	if c, ok := o.Charges(); ok {
		b, err := json.Marshal(c)
		if err != nil {
			return err
		}
		charges = string(b)
	}

	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return err
	}
	flavorsJSON, err := json.Marshal(flavors)
	if err != nil {
		return err
	}
	pricingJSON, err := json.Marshal(o.Pricing())
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx,
		`INSERT INTO orders (id, number, items, flavors, phone, address, order_type, status, pricing, charges, created_at, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.RecordID().String(),
		o.Number(),
		string(itemsJSON),
		string(flavorsJSON),
		o.Phone().String(),
		o.Address(),
		o.OrderType().String(),
		o.Status().String(),
		string(pricingJSON),
		charges,
		o.CreatedAt().UnixMicro(),
		o.SavedAt().UnixMicro(),
	)
	if err != nil {
		return fmt.Errorf("insert order %s: %w", o.Number(), err)
	}
	return nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, number string, status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}

	res, err := r.q.ExecContext(ctx,
		`UPDATE orders SET status = ?
		 WHERE id = (SELECT id FROM orders WHERE number = ?`+newestFirst+` LIMIT 1)`,
		status.String(), number,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.NewObjectNotFoundError("order", number)
	}
	return nil
}

func (r *OrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE number = ?`+newestFirst+` LIMIT 1`, number)

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("order", number)
	}
	return o, err
}

func (r *OrderRepository) GetLatestByPhone(ctx context.Context, phone kernel.Phone) (*order.Order, error) {
	if phone.IsZero() {
		return nil, errs.NewValueIsRequiredError("phone")
	}

	row := r.q.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE phone = ?`+newestFirst+` LIMIT 1`, phone.String())

	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("order", phone.String())
	}
	return o, err
}

func (r *OrderRepository) CountActiveByPhone(ctx context.Context, phone kernel.Phone) (int, error) {
	if phone.IsZero() {
		return 0, nil
	}

	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE phone = ? AND status <> ?`,
		phone.String(), order.Ready.String(),
	).Scan(&n)
	return n, err
}

func (r *OrderRepository) ListInProgress(ctx context.Context, limit int) ([]*order.Order, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE status <> ?`+newestFirst+` LIMIT ?`,
		order.Ready.String(), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*order.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (*order.Order, error) {
	var id, number, itemsJSON, rawPhone, address, rawType, status, pricingJSON string
	var chargesJSON sql.NullString
	var createdAt, savedAt int64
	if err := s.Scan(&id, &number, &itemsJSON, &rawPhone, &address, &rawType, &status, &pricingJSON, &chargesJSON, &createdAt, &savedAt); err != nil {
		return nil, err
	}

	recordID, err := kernel.UUIDFromString(id)
	if err != nil {
		return nil, err
	}

	var items []cart.Item
	if err := json.Unmarshal([]byte(itemsJSON), &items); err != nil {
		return nil, fmt.Errorf("decode items of order %s: %w", number, err)
	}

	var breakdown pricing.Breakdown
	if err := json.Unmarshal([]byte(pricingJSON), &breakdown); err != nil {
		return nil, fmt.Errorf("decode pricing of order %s: %w", number, err)
	}

	var charges *pricing.Charges
	if chargesJSON.Valid {
		charges = &pricing.Charges{}
		if err := json.Unmarshal([]byte(chargesJSON.String), charges); err != nil {
			return nil, fmt.Errorf("decode charges of order %s: %w", number, err)
		}
	}

	phone, _ := kernel.NormalizePhone(rawPhone)
	orderType, _ := kernel.ParseOrderType(rawType)

	return order.RestoreOrder(
		recordID,
		number,
		items,
		phone,
		address,
		orderType,
		order.Status(status),
		time.UnixMicro(createdAt),
		time.UnixMicro(savedAt),
		breakdown,
		charges,
	)
}
