package repositories

import (
	"context"
	"fmt"
	"time"

	"gummy-store/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AddressRepository struct {
	table *Table
}

func NewAddressRepository(db DBTX) *AddressRepository {
	return &AddressRepository{table: mustTable(db, "addresses")}
}

func (r *AddressRepository) Create(ctx context.Context, a *models.Address) error {
	created, err := InsertInto[models.Address](ctx, r.table, map[string]any{
		"full_name":  a.FullName,
		"phone":      a.Phone,
		"email":      a.Email,
		"address":    a.Address,
		"cep":        a.CEP,
		"city":       a.City,
		"state":      a.State,
		"street":     a.Street,
		"number":     a.Number,
		"complement": a.Complement,
	})
	if err != nil {
		return err
	}

	*a = *created
	return nil
}

func (r *AddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Address, error) {
	return SelectOne[models.Address](ctx, r.table, Query{Filters: []Eq{{"id", id}}})
}

type OrderRepository struct {
	db    DBTX
	table *Table
}

func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{db: db, table: mustTable(db, "orders")}
}

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	if o.Status == "" {
		o.Status = models.OrderStatusPending
	}

	created, err := InsertInto[models.Order](ctx, r.table, map[string]any{
		"address_id":         o.AddressID,
		"product_name":       o.ProductName,
		"product_price":      o.ProductPrice,
		"product_flavor":     o.ProductFlavor,
		"quantity":           o.Quantity,
		"total_price":        o.TotalPrice,
		"status":             o.Status,
		"payment_method":     o.PaymentMethod,
		"payment_id":         o.PaymentID,
		"payment_expires_at": o.PaymentExpiresAt,
	})
	if err != nil {
		return err
	}

	*o = *created
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return SelectOne[models.Order](ctx, r.table, Query{Filters: []Eq{{"id", id}}})
}

func (r *OrderRepository) FindByPaymentID(ctx context.Context, paymentID string) (*models.Order, error) {
	return SelectOne[models.Order](ctx, r.table, Query{
		Filters:    []Eq{{"payment_id", paymentID}},
		OrderBy:    "created_at",
		Descending: true,
	})
}

// MarkPaid moves a pending order to paid. It reports false when the order
// was not pending anymore, so callers only act on the first transition.
func (r *OrderRepository) MarkPaid(ctx context.Context, id uuid.UUID) (bool, error) {
	affected, err := r.table.Update(ctx,
		map[string]any{"status": models.OrderStatusPaid, "updated_at": time.Now()},
		[]Eq{{"id", id}, {"status", models.OrderStatusPending}},
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	affected, err := r.table.Update(ctx,
		map[string]any{"status": status, "updated_at": time.Now()},
		[]Eq{{"id", id}},
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) List(ctx context.Context, status string, limit, offset int) ([]models.Order, int, error) {
	var filters []Eq
	if status != "" {
		filters = append(filters, Eq{"status", status})
	}

	countSQL := "SELECT COUNT(*) FROM orders"
	countArgs := []any{}
	if status != "" {
		countSQL += " WHERE status = $1"
		countArgs = append(countArgs, status)
	}

	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	orders, err := SelectInto[models.Order](ctx, r.table, Query{
		Filters:    filters,
		OrderBy:    "created_at",
		Descending: true,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *OrderRepository) ListForExport(ctx context.Context, status string) ([]models.OrderExportRow, error) {
	query := `
		SELECT
			o.id, o.address_id, o.product_name, o.product_price, o.product_flavor,
			o.quantity, o.total_price, o.status, o.payment_method, o.payment_id,
			o.payment_expires_at, o.created_at, o.updated_at,
			a.full_name, a.email, a.phone, a.address
		FROM orders o
		JOIN addresses a ON a.id = o.address_id
	`
	args := []any{}
	if status != "" {
		query += " WHERE o.status = $1"
		args = append(args, status)
	}
	query += " ORDER BY o.created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("export orders: %w", err)
	}

	result, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.OrderExportRow])
	if err != nil {
		return nil, fmt.Errorf("collect export rows: %w", err)
	}
	return result, nil
}

type CheckoutRepository struct {
	table *Table
}

func NewCheckoutRepository(db DBTX) *CheckoutRepository {
	return &CheckoutRepository{table: mustTable(db, "checkout_attempts")}
}

func (r *CheckoutRepository) Get(ctx context.Context, id uuid.UUID) (*models.CheckoutAttempt, error) {
	return SelectOne[models.CheckoutAttempt](ctx, r.table, Query{Filters: []Eq{{"id", id}}})
}

func (r *CheckoutRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) (*models.CheckoutAttempt, error) {
	return SelectOne[models.CheckoutAttempt](ctx, r.table, Query{Filters: []Eq{{"order_id", orderID}}})
}

func (r *CheckoutRepository) Create(ctx context.Context, a *models.CheckoutAttempt) error {
	created, err := InsertInto[models.CheckoutAttempt](ctx, r.table, map[string]any{
		"id":             a.ID,
		"session_id":     a.SessionID,
		"payment_method": a.PaymentMethod,
		"request_digest": a.RequestDigest,
		"stage":          a.Stage,
	})
	if err != nil {
		return err
	}

	*a = *created
	return nil
}

func (r *CheckoutRepository) Save(ctx context.Context, a *models.CheckoutAttempt) error {
	a.UpdatedAt = time.Now()
	affected, err := r.table.Update(ctx, map[string]any{
		"stage":           a.Stage,
		"address_id":      a.AddressID,
		"payment_id":      a.PaymentID,
		"payment_payload": a.PaymentPayload,
		"order_id":        a.OrderID,
		"last_error":      a.LastError,
		"updated_at":      a.UpdatedAt,
	}, []Eq{{"id", a.ID}})
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// MarkConfirmedByOrder moves the attempt that produced orderID to payment_confirmed.
func (r *CheckoutRepository) MarkConfirmedByOrder(ctx context.Context, orderID uuid.UUID) error {
	_, err := r.table.Update(ctx,
		map[string]any{"stage": models.StagePaymentConfirmed, "updated_at": time.Now()},
		[]Eq{{"order_id", orderID}},
	)
	return err
}
