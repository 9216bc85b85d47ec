package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/freshdeli/console/internal/domain/catalog"
	domainErrors "github.com/freshdeli/console/internal/domain/errors"
	"github.com/freshdeli/console/internal/infrastructure/monitoring"
)

type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(conn *Connection) *CatalogRepository {
	return &CatalogRepository{
		db: conn.GetDB(),
	}
}

func scanItem(scan func(dest ...interface{}) error) (*catalog.Item, error) {
	var item catalog.Item
	var sellDate sql.NullTime
	var rank sql.NullInt64

	err := scan(&item.ID, &item.Name, &item.Price, &item.Stock, &item.ImageURL, &sellDate, &rank)
	if err != nil {
		return nil, err
	}

	if sellDate.Valid {
		d := catalog.DateOf(sellDate.Time)
		item.SellDate = &d
	}
	if rank.Valid {
		r := int(rank.Int64)
		item.Rank = &r
	}

	return &item, nil
}

func sellDateArg(d *catalog.Date) interface{} {
	if d == nil {
		return nil
	}
	return d.Time()
}

func rankArg(r *int) interface{} {
	if r == nil {
		return nil
	}
	return *r
}

func (r *CatalogRepository) GetItemByID(ctx context.Context, id int64) (*catalog.Item, error) {
	query := `
		SELECT id, name, price, stock, image_url, sell_date, rank
		FROM items
		WHERE id = $1
	`

	row := monitoring.InstrumentQueryRow(ctx, r.db, "SELECT", "items", query, id)
	item, err := scanItem(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domainErrors.ErrItemNotFound
		}
		return nil, err
	}

	return item, nil
}

func (r *CatalogRepository) GetItemsByIDs(ctx context.Context, ids []int64) ([]catalog.Item, error) {
	query := `
		SELECT id, name, price, stock, image_url, sell_date, rank
		FROM items
		WHERE id = ANY($1)
		ORDER BY id
	`

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "items", query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectItems(rows)
}

func (r *CatalogRepository) ListItems(ctx context.Context) ([]catalog.Item, error) {
	query := `
		SELECT id, name, price, stock, image_url, sell_date, rank
		FROM items
		ORDER BY id
	`

	rows, err := monitoring.InstrumentQuery(ctx, r.db, "SELECT", "items", query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectItems(rows)
}

func collectItems(rows *sql.Rows) ([]catalog.Item, error) {
	var items []catalog.Item
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *CatalogRepository) CreateItem(ctx context.Context, item *catalog.Item) error {
	query := `
		INSERT INTO items (name, price, stock, image_url, sell_date, rank, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id
	`

	row := monitoring.InstrumentQueryRow(ctx, r.db, "INSERT", "items", query,
		item.Name, item.Price, item.Stock, item.ImageURL, sellDateArg(item.SellDate), rankArg(item.Rank),
	)
	return row.Scan(&item.ID)
}

func (r *CatalogRepository) UpdateItem(ctx context.Context, item catalog.Item) error {
	query := `
		UPDATE items
		SET name = $2, price = $3, stock = $4, image_url = $5, sell_date = $6, rank = $7, updated_at = NOW()
		WHERE id = $1
	`

	result, err := monitoring.InstrumentExec(ctx, r.db, "UPDATE", "items", query,
		item.ID, item.Name, item.Price, item.Stock, item.ImageURL, sellDateArg(item.SellDate), rankArg(item.Rank),
	)
	if err != nil {
		return err
	}
	return requireRow(result, domainErrors.ErrItemNotFound)
}

func (r *CatalogRepository) DeleteItem(ctx context.Context, id int64) error {
	query := `DELETE FROM items WHERE id = $1`

	result, err := monitoring.InstrumentExec(ctx, r.db, "DELETE", "items", query, id)
	if err != nil {
		return err
	}
	return requireRow(result, domainErrors.ErrItemNotFound)
}

func (r *CatalogRepository) UpdateImageURL(ctx context.Context, id int64, imageURL string) error {
	query := `UPDATE items SET image_url = $2, updated_at = NOW() WHERE id = $1`

	result, err := monitoring.InstrumentExec(ctx, r.db, "UPDATE", "items", query, id, imageURL)
	if err != nil {
		return err
	}
	return requireRow(result, domainErrors.ErrItemNotFound)
}

// SaveBucketOrder writes rank = position for one bucket's ordered id list in
// a single transaction. The write is all-or-nothing: an abandoned edit
// session never leaves a half-renumbered bucket behind.
func (r *CatalogRepository) SaveBucketOrder(ctx context.Context, orderedIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	query := `UPDATE items SET rank = $2, updated_at = NOW() WHERE id = $1`
	for position, id := range orderedIDs {
		if _, err := monitoring.InstrumentTxExec(ctx, tx, "UPDATE", "items", query, id, position+1); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// MoveSellDates writes the new sell dates of a bulk move in a single
// transaction. Ranks are intentionally untouched.
func (r *CatalogRepository) MoveSellDates(ctx context.Context, moves []catalog.DateMove) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	query := `UPDATE items SET sell_date = $2, updated_at = NOW() WHERE id = $1`
	for _, move := range moves {
		if _, err := monitoring.InstrumentTxExec(ctx, tx, "UPDATE", "items", query, move.ItemID, move.SellDate.Time()); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func requireRow(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
