package postgres

import (
	"context"
	"database/sql"

	"github.com/freshdeli/console/internal/domain/delivery"
	domainErrors "github.com/freshdeli/console/internal/domain/errors"
	"github.com/freshdeli/console/internal/infrastructure/monitoring"
)

type DeliveryRepository struct {
	db *sql.DB
}

func NewDeliveryRepository(conn *Connection) *DeliveryRepository {
	return &DeliveryRepository{
		db: conn.GetDB(),
	}
}

func (r *DeliveryRepository) GetSettings(ctx context.Context) (*delivery.Settings, error) {
	settings := &delivery.Settings{}

	tierQuery := `
		SELECT id, min_subtotal, fee
		FROM delivery_fee_tiers
		ORDER BY min_subtotal
	`
	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "delivery_fee_tiers", tierQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var tier delivery.FeeTier
		if err := rows.Scan(&tier.ID, &tier.MinSubtotal, &tier.Fee); err != nil {
			return nil, err
		}
		settings.Tiers = append(settings.Tiers, tier)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	windowQuery := `
		SELECT id, label, starts_at, ends_at
		FROM delivery_windows
		ORDER BY starts_at
	`
	windowRows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "delivery_windows", windowQuery)
	if err != nil {
		return nil, err
	}
	defer windowRows.Close()

	for windowRows.Next() {
		var window delivery.Window
		if err := windowRows.Scan(&window.ID, &window.Label, &window.StartsAt, &window.EndsAt); err != nil {
			return nil, err
		}
		settings.Windows = append(settings.Windows, window)
	}

	return settings, windowRows.Err()
}

// SaveSettings replaces fee tiers and windows wholesale in one transaction;
// the admin form always submits the full configuration.
func (r *DeliveryRepository) SaveSettings(ctx context.Context, settings *delivery.Settings) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := monitoring.InstrumentTxExec(ctx, tx, "DELETE", "delivery_fee_tiers", `DELETE FROM delivery_fee_tiers`); err != nil {
		tx.Rollback()
		return err
	}
	for _, tier := range settings.Tiers {
		if _, err := monitoring.InstrumentTxExec(ctx, tx, "INSERT", "delivery_fee_tiers",
			`INSERT INTO delivery_fee_tiers (min_subtotal, fee) VALUES ($1, $2)`,
			tier.MinSubtotal, tier.Fee,
		); err != nil {
			tx.Rollback()
			return err
		}
	}

	if _, err := monitoring.InstrumentTxExec(ctx, tx, "DELETE", "delivery_windows", `DELETE FROM delivery_windows`); err != nil {
		tx.Rollback()
		return err
	}
	for _, window := range settings.Windows {
		if _, err := monitoring.InstrumentTxExec(ctx, tx, "INSERT", "delivery_windows",
			`INSERT INTO delivery_windows (label, starts_at, ends_at) VALUES ($1, $2, $3)`,
			window.Label, window.StartsAt, window.EndsAt,
		); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (r *DeliveryRepository) ListOrders(ctx context.Context, limit, offset int) ([]delivery.Order, error) {
	query := `
		SELECT id, customer_name, customer_phone, address, window_id, status, subtotal, fee, created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "orders", query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []delivery.Order
	for rows.Next() {
		var order delivery.Order
		err := rows.Scan(
			&order.ID, &order.CustomerName, &order.CustomerPhone, &order.Address,
			&order.WindowID, &order.Status, &order.Subtotal, &order.Fee,
			&order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func (r *DeliveryRepository) GetOrderByID(ctx context.Context, id int64) (*delivery.Order, error) {
	query := `
		SELECT id, customer_name, customer_phone, address, window_id, status, subtotal, fee, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order delivery.Order
	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "orders", query, id)
	err := row.Scan(
		&order.ID, &order.CustomerName, &order.CustomerPhone, &order.Address,
		&order.WindowID, &order.Status, &order.Subtotal, &order.Fee,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domainErrors.ErrOrderNotFound
		}
		return nil, err
	}

	return &order, nil
}

func (r *DeliveryRepository) CreateOrder(ctx context.Context, order *delivery.Order) error {
	query := `
		INSERT INTO orders (customer_name, customer_phone, address, window_id, status, subtotal, fee, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id
	`

	row := monitoring.InstrumentQueryRow(ctx, r.db, "INSERT", "orders", query,
		order.CustomerName, order.CustomerPhone, order.Address,
		order.WindowID, order.Status, order.Subtotal, order.Fee,
	)
	return row.Scan(&order.ID)
}

func (r *DeliveryRepository) UpdateOrderStatus(ctx context.Context, id int64, status delivery.Status) error {
	query := `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := monitoring.InstrumentExec(ctx, r.db, "UPDATE", "orders", query, id, string(status))
	if err != nil {
		return err
	}
	return requireRow(result, domainErrors.ErrOrderNotFound)
}
