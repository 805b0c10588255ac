package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nhalm/pgxkit"

	"github.com/Neeraj921721/product-catalog-backend/internal/filter"
	"github.com/Neeraj921721/product-catalog-backend/internal/id"
	"github.com/Neeraj921721/product-catalog-backend/internal/models"
)

// insertChunkSize bounds the number of statements queued in one pgx.Batch.
const insertChunkSize = 500

const selectProducts = `SELECT id, sku, name, brand, color, mrp, quantity, created_at FROM products`

const insertProduct = `INSERT INTO products (id, sku, name, brand, color, mrp, quantity)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (sku) DO NOTHING`

type ProductRepository struct {
	db *pgxkit.DB
}

func NewProductRepository(db *pgxkit.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	return r.query(ctx, "list products", selectProducts+` ORDER BY id`)
}

// Search returns the products matching every clause of pred.
func (r *ProductRepository) Search(ctx context.Context, pred filter.Predicate) ([]models.Product, error) {
	where, args := pred.Where(1)
	return r.query(ctx, "search products", selectProducts+` WHERE `+where+` ORDER BY id`, args...)
}

func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	rows, err := r.db.Query(ctx, selectProducts+` WHERE sku = $1`, sku)
	if err != nil {
		return nil, storageErr("get product", err)
	}

	product, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Product])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storageErr("get product", err)
	}

	return &product, nil
}

// InsertIfAbsent stores p unless its SKU already exists. Existing rows are
// never updated.
func (r *ProductRepository) InsertIfAbsent(ctx context.Context, p models.NewProduct) (bool, error) {
	inserted, err := r.InsertBatch(ctx, []models.NewProduct{p})
	if err != nil {
		return false, err
	}
	return inserted == 1, nil
}

// InsertBatch inserts all products inside one transaction, skipping SKUs
// that already exist. Any failure rolls back the entire batch. It returns
// the number of rows actually created.
func (r *ProductRepository) InsertBatch(ctx context.Context, products []models.NewProduct) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, storageErr("begin insert", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	inserted := 0
	for start := 0; start < len(products); start += insertChunkSize {
		end := min(start+insertChunkSize, len(products))
		n, err := insertChunk(ctx, tx, products[start:end])
		if err != nil {
			return 0, err
		}
		inserted += n
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, storageErr("commit insert", err)
	}

	return inserted, nil
}

func insertChunk(ctx context.Context, tx pgx.Tx, products []models.NewProduct) (int, error) {
	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(insertProduct, id.NewProductID(), p.SKU, p.Name, p.Brand, p.Color, p.MRP, p.Quantity)
	}

	results := tx.SendBatch(ctx, batch)
	inserted := 0
	for _, p := range products {
		tag, err := results.Exec()
		if err != nil {
			_ = results.Close()
			return 0, storageErr(fmt.Sprintf("insert product %q", p.SKU), err)
		}
		inserted += int(tag.RowsAffected())
	}
	if err := results.Close(); err != nil {
		return 0, storageErr("insert products", err)
	}

	return inserted, nil
}

// Ping verifies the database answers queries.
func (r *ProductRepository) Ping(ctx context.Context) error {
	var one int
	if err := r.db.QueryRow(ctx, `SELECT 1`).Scan(&one); err != nil {
		return storageErr("ping", err)
	}
	return nil
}

func (r *ProductRepository) query(ctx context.Context, op, sql string, args ...any) ([]models.Product, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}

	products, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Product])
	if err != nil {
		return nil, storageErr(op, err)
	}

	return products, nil
}
