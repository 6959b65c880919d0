package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog-backend/internal/domains/product/model"
	"catalog-backend/pkg/database"
	"catalog-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) ProductRepository {
	return &postgresRepository{pool: pool}
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so the row helpers
// serve regular calls and chunked import transactions alike.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// productColumns is the writable column list; argument builders and scan
// targets mirror this order exactly.
var productColumns = []string{
	"name", "brand", "category_id", "sku", "description", "features", "notes",
	"weight", "desi", "width", "height", "depth", "length",
	"warranty_months", "material", "color",
	"trendyol_barcode", "hepsiburada_barcode",
	"hepsiburada_seller_stock_code", "hepsiburada_supply_barcode",
	"koctas_barcode", "koctas_istanbul_barcode",
	"koctas_ean_barcode", "koctas_ean_istanbul_barcode",
	"ptt_avm_barcode", "ptt_product_code", "pazarama_barcode",
	"haceyapi_barcode", "amazon_barcode",
	"n11_catalog_id", "n11_product_code",
	"external_barcode", "external_product_code", "external_product_id",
	"spare_barcode_1", "spare_barcode_2", "spare_barcode_3", "spare_barcode_4",
	"logo_barcodes", "images", "marketplace_images", "videos", "primary_image",
	"archived", "created_at", "updated_at",
}

var (
	productSelectColumns = "p.id, p." + strings.Join(productColumns, ", p.") + ", c.name AS category_name"
	productFrom          = "FROM products p LEFT JOIN categories c ON c.id = p.category_id"
	productInsertSQL     = buildInsertSQL()
	productUpdateSQL     = buildUpdateSQL()
)

func buildInsertSQL() string {
	placeholders := make([]string, len(productColumns))
	for i := range productColumns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO products (%s) VALUES (%s) RETURNING id",
		strings.Join(productColumns, ", "),
		strings.Join(placeholders, ", "),
	)
}

func buildUpdateSQL() string {
	assignments := make([]string, len(productColumns))
	for i, column := range productColumns {
		assignments[i] = fmt.Sprintf("%s = $%d", column, i+1)
	}
	return fmt.Sprintf(
		"UPDATE products SET %s WHERE id = $%d",
		strings.Join(assignments, ", "),
		len(productColumns)+1,
	)
}

// productArgs builds the argument list matching productColumns. The logo
// barcode slots collapse to their comma-joined storage form here; every
// other list maps to a text[] column.
func productArgs(p *model.Product) []any {
	return []any{
		p.Name, p.Brand, p.CategoryID, p.SKU, p.Description, p.Features, p.Notes,
		p.Weight, p.Desi, p.Width, p.Height, p.Depth, p.Length,
		p.WarrantyMonths, p.Material, p.Color,
		p.TrendyolBarcode, p.HepsiburadaBarcode,
		p.HepsiburadaSellerStockCode, p.HepsiburadaSupplyBarcode,
		p.KoctasBarcode, p.KoctasIstanbulBarcode,
		p.KoctasEANBarcode, p.KoctasEANIstanbulBarcode,
		p.PttAvmBarcode, p.PttProductCode, p.PazaramaBarcode,
		p.HaceyapiBarcode, p.AmazonBarcode,
		p.N11CatalogID, p.N11ProductCode,
		p.ExternalBarcode, p.ExternalProductCode, p.ExternalProductID,
		p.SpareBarcode1, p.SpareBarcode2, p.SpareBarcode3, p.SpareBarcode4,
		model.EncodeLogoBarcodes(p.LogoBarcodes),
		p.Images, p.MarketplaceImages, p.Videos, p.PrimaryImage,
		p.Archived, p.CreatedAt, p.UpdatedAt,
	}
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	p := &model.Product{}
	var logoEncoded string
	var categoryName *string

	err := row.Scan(
		&p.ID,
		&p.Name, &p.Brand, &p.CategoryID, &p.SKU, &p.Description, &p.Features, &p.Notes,
		&p.Weight, &p.Desi, &p.Width, &p.Height, &p.Depth, &p.Length,
		&p.WarrantyMonths, &p.Material, &p.Color,
		&p.TrendyolBarcode, &p.HepsiburadaBarcode,
		&p.HepsiburadaSellerStockCode, &p.HepsiburadaSupplyBarcode,
		&p.KoctasBarcode, &p.KoctasIstanbulBarcode,
		&p.KoctasEANBarcode, &p.KoctasEANIstanbulBarcode,
		&p.PttAvmBarcode, &p.PttProductCode, &p.PazaramaBarcode,
		&p.HaceyapiBarcode, &p.AmazonBarcode,
		&p.N11CatalogID, &p.N11ProductCode,
		&p.ExternalBarcode, &p.ExternalProductCode, &p.ExternalProductID,
		&p.SpareBarcode1, &p.SpareBarcode2, &p.SpareBarcode3, &p.SpareBarcode4,
		&logoEncoded, &p.Images, &p.MarketplaceImages, &p.Videos, &p.PrimaryImage,
		&p.Archived, &p.CreatedAt, &p.UpdatedAt,
		&categoryName,
	)
	if err != nil {
		return nil, err
	}

	p.LogoBarcodes = model.DecodeLogoBarcodes(logoEncoded)
	if categoryName != nil {
		p.CategoryName = *categoryName
	}
	return p, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	query := fmt.Sprintf("SELECT %s %s ORDER BY p.id ASC", productSelectColumns, productFrom)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		logger.Error("GetAll: query failed", err)
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			logger.Error("GetAll: scan error", err)
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	return products, nil
}

func (r *postgresRepository) List(ctx context.Context, filter *model.ListFilter) ([]model.Product, int64, error) {
	var whereClauses []string
	var args []any
	argIndex := 1

	if filter.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(p.name ILIKE $%d OR p.sku ILIKE $%d OR p.brand ILIKE $%d)", argIndex, argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}
	if filter.CategoryID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("p.category_id = $%d", argIndex))
		args = append(args, *filter.CategoryID)
		argIndex++
	}
	if filter.Archived != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("p.archived = $%d", argIndex))
		args = append(args, *filter.Archived)
		argIndex++
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products p %s", whereClause)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		logger.Error("List: count query failed", err)
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	listQuery := fmt.Sprintf(
		"SELECT %s %s %s ORDER BY p.name ASC LIMIT $%d OFFSET $%d",
		productSelectColumns, productFrom, whereClause, argIndex, argIndex+1,
	)
	listArgs := append(args, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, listQuery, listArgs...)
	if err != nil {
		logger.Error("List: query failed", err)
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0, filter.Limit)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return products, total, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE p.id = $1", productSelectColumns, productFrom)

	product, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrProductNotFound
		}
		logger.Error("GetByID: database error", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

func (r *postgresRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	return insertProduct(ctx, r.pool, product)
}

func (r *postgresRepository) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	return updateProduct(ctx, r.pool, product)
}

func insertProduct(ctx context.Context, q querier, product *model.Product) (*model.Product, error) {
	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	if err := q.QueryRow(ctx, productInsertSQL, productArgs(product)...).Scan(&product.ID); err != nil {
		if isDuplicateSKU(err) {
			return nil, model.ErrDuplicateSKU
		}
		logger.Error("Create: database error", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func updateProduct(ctx context.Context, q querier, product *model.Product) (*model.Product, error) {
	product.UpdatedAt = time.Now()

	args := append(productArgs(product), product.ID)
	tag, err := q.Exec(ctx, productUpdateSQL, args...)
	if err != nil {
		if isDuplicateSKU(err) {
			return nil, model.ErrDuplicateSKU
		}
		logger.Error("Update: database error", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

func isDuplicateSKU(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName, "sku")
}

func (r *postgresRepository) SetArchived(ctx context.Context, id int64, archived bool) error {
	const query = `UPDATE products SET archived = $1, updated_at = $2 WHERE id = $3`

	tag, err := r.pool.Exec(ctx, query, archived, time.Now(), id)
	if err != nil {
		logger.Error("SetArchived: database error", err)
		return fmt.Errorf("failed to set archive flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM products WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		logger.Error("Delete: database error", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// WithinChunk commits an import chunk atomically. Row writes run inside
// savepoints (nested transactions in pgx terms) so one bad row rolls back
// alone and can be recorded as a row error while the chunk proceeds.
func (r *postgresRepository) WithinChunk(ctx context.Context, fn func(ops ChunkOps) error) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(&chunkOps{tx: tx})
	})
}

type chunkOps struct {
	tx pgx.Tx
}

func (c *chunkOps) Insert(ctx context.Context, product *model.Product) (*model.Product, error) {
	var created *model.Product
	err := c.withSavepoint(ctx, func(sp pgx.Tx) error {
		var err error
		created, err = insertProduct(ctx, sp, product)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (c *chunkOps) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	var updated *model.Product
	err := c.withSavepoint(ctx, func(sp pgx.Tx) error {
		var err error
		updated, err = updateProduct(ctx, sp, product)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *chunkOps) withSavepoint(ctx context.Context, fn func(pgx.Tx) error) error {
	sp, err := c.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin savepoint: %w", err)
	}

	if err := fn(sp); err != nil {
		_ = sp.Rollback(ctx)
		return err
	}

	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("failed to release savepoint: %w", err)
	}
	return nil
}
