package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog-backend/internal/domains/category"
	"catalog-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) category.Repository {
	return &postgresRepository{pool: pool}
}

const categoryColumns = "id, name, slug, description, is_active, created_at, updated_at"

func scanCategory(row pgx.Row) (*category.Category, error) {
	entity := &category.Category{}
	err := row.Scan(
		&entity.ID,
		&entity.Name,
		&entity.Slug,
		&entity.Description,
		&entity.IsActive,
		&entity.CreatedAt,
		&entity.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return entity, nil
}

func (r *postgresRepository) Create(ctx context.Context, entity *category.Category) (*category.Category, error) {
	const query = `
		INSERT INTO categories (name, slug, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + categoryColumns

	now := time.Now()
	row := r.pool.QueryRow(ctx, query,
		entity.Name,
		entity.Slug,
		entity.Description,
		entity.IsActive,
		now,
		now,
	)

	created, err := scanCategory(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.ConstraintName == "idx_categories_name" || pgErr.ConstraintName == "idx_categories_slug" {
				logger.Error("Create: duplicate category name", err)
				return nil, category.ErrDuplicateName
			}
		}
		logger.Error("Create: database error", err)
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	const query = `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	entity, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		logger.Error("GetByID: database error", err)
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return entity, nil
}

func (r *postgresRepository) GetAll(ctx context.Context, filter *category.Filter) ([]category.Category, int64, error) {
	var whereClauses []string
	var args []interface{}
	argIndex := 1

	if filter.IsActive != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("is_active = $%d", argIndex))
		args = append(args, *filter.IsActive)
		argIndex++
	}

	if filter.Search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("name ILIKE $%d", argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM categories %s", whereClause)

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		logger.Error("GetAll: count query failed", err)
		return nil, 0, fmt.Errorf("failed to count categories: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s FROM categories
		%s
		ORDER BY name ASC
		LIMIT $%d OFFSET $%d
	`, categoryColumns, whereClause, argIndex, argIndex+1)

	listArgs := append(args, filter.Limit, filter.Offset)
	rows, err := r.pool.Query(ctx, listQuery, listArgs...)
	if err != nil {
		logger.Error("GetAll: query failed", err)
		return nil, 0, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	entities := make([]category.Category, 0, filter.Limit)
	for rows.Next() {
		entity := category.Category{}
		err := rows.Scan(
			&entity.ID,
			&entity.Name,
			&entity.Slug,
			&entity.Description,
			&entity.IsActive,
			&entity.CreatedAt,
			&entity.UpdatedAt,
		)
		if err != nil {
			logger.Error("GetAll: scan error", err)
			return nil, 0, fmt.Errorf("failed to scan category: %w", err)
		}
		entities = append(entities, entity)
	}

	if err = rows.Err(); err != nil {
		logger.Error("GetAll: rows error", err)
		return nil, 0, fmt.Errorf("failed to get categories: %w", err)
	}

	return entities, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, entity *category.Category) (*category.Category, error) {
	const query = `
		UPDATE categories
		SET name = $1, slug = $2, description = $3, is_active = $4, updated_at = $5
		WHERE id = $6
		RETURNING ` + categoryColumns

	row := r.pool.QueryRow(ctx, query,
		entity.Name,
		entity.Slug,
		entity.Description,
		entity.IsActive,
		time.Now(),
		entity.ID,
	)

	updated, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.ConstraintName == "idx_categories_name" || pgErr.ConstraintName == "idx_categories_slug" {
				return nil, category.ErrDuplicateName
			}
		}

		logger.Error("Update: database error", err)
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return updated, nil
}

// Delete refuses to remove a category while products still reference it.
// The FK is also enforced in the schema; the explicit check gives a clean
// domain error instead of a constraint violation.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	count, err := r.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return category.ErrCategoryInUse
	}

	const query = `DELETE FROM categories WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return category.ErrCategoryInUse
		}
		logger.Error("Delete: database error", err)
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if result.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}

	return nil
}

func (r *postgresRepository) FindByName(ctx context.Context, name string) (*category.Category, error) {
	const query = `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE LOWER(TRIM(name)) = LOWER(TRIM($1))
		LIMIT 1
	`

	entity, err := scanCategory(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	return entity, nil
}

func (r *postgresRepository) CountProducts(ctx context.Context, id int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM products WHERE category_id = $1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products in category: %w", err)
	}

	return count, nil
}
