package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "github.com/freshcart/freshcart-api/internal/entity"
	"github.com/freshcart/freshcart-api/internal/usecase"
)

var ErrNotFound = errors.New("not found")

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

// itemRow is the wire shape of a frozen line item inside items_json.
type itemRow struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	UnitPricePaise int64  `json:"unitPricePaise"`
	Quantity       int    `json:"quantity"`
	Unit           string `json:"unit,omitempty"`
	Category       string `json:"category,omitempty"`
	ImageURL       string `json:"imageUrl,omitempty"`
	Description    string `json:"description,omitempty"`
}

func (r *MySQLOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	items, err := marshalItems(o.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO orders (id,user_id,payment_id,payment_method,status,amount_paise,items_json,created_at)
VALUES (?,?,?,?,?,?,?,?)
`, o.ID, o.UserID, o.PaymentID, o.PaymentMethod, string(o.Status), o.AmountPaise, items, o.CreatedAt)
	return err
}

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,user_id,payment_id,payment_method,status,amount_paise,items_json,created_at
FROM orders WHERE id=?`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

func (r *MySQLOrderRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,user_id,payment_id,payment_method,status,amount_paise,items_json,created_at
FROM orders WHERE user_id=?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *MySQLOrderRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id=?`, id)
	return err
}

func (r *MySQLOrderRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	// Inclusive, to match Order.Expired: a row created exactly at the
	// cutoff is already expired on the read path.
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE created_at <= ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *MySQLOrderRepo) UpdateStatusIf(ctx context.Context, id string, from, to domain.Status) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET status=? WHERE id=? AND status=?`,
		string(to), id, string(from))
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	// rows == 0: not found, or already past fromStatus
	return rows > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		o      domain.Order
		status string
		items  []byte
	)
	if err := row.Scan(&o.ID, &o.UserID, &o.PaymentID, &o.PaymentMethod,
		&status, &o.AmountPaise, &items, &o.CreatedAt); err != nil {
		return nil, err
	}
	o.Status = domain.Status(status)

	var rows []itemRow
	if err := json.Unmarshal(items, &rows); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	o.Items = make([]domain.LineItem, len(rows))
	for i, it := range rows {
		o.Items[i] = domain.LineItem{
			ProductID:      it.ProductID,
			Name:           it.Name,
			UnitPricePaise: it.UnitPricePaise,
			Quantity:       it.Quantity,
			Unit:           it.Unit,
			Category:       it.Category,
			ImageURL:       it.ImageURL,
			Description:    it.Description,
		}
	}
	return &o, nil
}

func marshalItems(items []domain.LineItem) ([]byte, error) {
	rows := make([]itemRow, len(items))
	for i, it := range items {
		rows[i] = itemRow{
			ProductID:      it.ProductID,
			Name:           it.Name,
			UnitPricePaise: it.UnitPricePaise,
			Quantity:       it.Quantity,
			Unit:           it.Unit,
			Category:       it.Category,
			ImageURL:       it.ImageURL,
			Description:    it.Description,
		}
	}
	return json.Marshal(rows)
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
