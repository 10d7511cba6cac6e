package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"rawstock/internal/domain"
)

var ErrInsufficientStock = errors.New("insufficient accessory stock")

const accessoryColumns = `
	id,
	style_number,
	accessory_number,
	accessory_name,
	accessory_type,
	accessory_image,
	stock_unit,
	created_at,
	updated_at
`

func (r *Repository) ListAccessories(ctx context.Context, search string, limit, offset int) ([]domain.Accessory, error) {
	limit = normalizeLimit(limit)
	offset = normalizeOffset(offset)

	rows, err := r.pool.Query(ctx, `
		SELECT `+accessoryColumns+`
		FROM accessories
		WHERE ($1 = '' OR accessory_number ILIKE '%' || $1 || '%' OR accessory_name ILIKE '%' || $1 || '%' OR style_number::text = $1)
		ORDER BY accessory_number ASC
		LIMIT $2 OFFSET $3
	`, strings.TrimSpace(search), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list accessories: %w", err)
	}
	defer rows.Close()

	accessories := make([]domain.Accessory, 0, limit)
	for rows.Next() {
		a, err := scanAccessoryRow(rows)
		if err != nil {
			return nil, err
		}
		accessories = append(accessories, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accessories: %w", err)
	}
	return accessories, nil
}

func (r *Repository) GetAccessory(ctx context.Context, accessoryNumber string) (*domain.Accessory, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+accessoryColumns+`
		FROM accessories
		WHERE accessory_number = $1
	`, accessoryNumber)
	a, err := scanAccessoryRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get accessory %s: %w", accessoryNumber, err)
	}
	return &a, nil
}

// AdjustAccessoryStock applies a signed piece delta. A deduction larger than
// the balance is rejected with ErrInsufficientStock; accessory stock is never
// clamped.
func (r *Repository) AdjustAccessoryStock(ctx context.Context, accessoryNumber string, delta int) (*domain.Accessory, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin accessory adjust tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var current int
	err = tx.QueryRow(ctx, `
		SELECT stock_unit FROM accessories
		WHERE accessory_number = $1
		FOR UPDATE
	`, accessoryNumber).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load accessory %s: %w", accessoryNumber, err)
	}

	if current+delta < 0 {
		return nil, fmt.Errorf("accessory %s has %d pieces, cannot remove %d: %w",
			accessoryNumber, current, -delta, ErrInsufficientStock)
	}

	row := tx.QueryRow(ctx, `
		UPDATE accessories SET stock_unit = stock_unit + $2, updated_at = NOW()
		WHERE accessory_number = $1
		RETURNING `+accessoryColumns+`
	`, accessoryNumber, delta)
	a, err := scanAccessoryRow(row)
	if err != nil {
		return nil, fmt.Errorf("adjust accessory %s: %w", accessoryNumber, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit accessory adjust tx: %w", err)
	}
	return &a, nil
}

func (r *Repository) BulkUpsertAccessories(ctx context.Context, rows []domain.AccessoryImportRow) (domain.UpsertResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.UpsertResult{}, fmt.Errorf("begin accessory import tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result := domain.UpsertResult{Total: len(rows)}
	for _, row := range rows {
		var inserted bool
		err := tx.QueryRow(ctx, `
			INSERT INTO accessories (style_number, accessory_number, accessory_name, accessory_type, accessory_image)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (accessory_number) DO UPDATE SET
				style_number = EXCLUDED.style_number,
				accessory_name = EXCLUDED.accessory_name,
				accessory_type = EXCLUDED.accessory_type,
				accessory_image = EXCLUDED.accessory_image,
				updated_at = NOW()
			RETURNING (xmax = 0)
		`, row.StyleNumber, row.AccessoryNumber, row.AccessoryName, row.AccessoryType, row.AccessoryImage).Scan(&inserted)
		if err != nil {
			return domain.UpsertResult{}, fmt.Errorf("upsert accessory %s: %w", row.AccessoryNumber, err)
		}
		if inserted {
			result.Added++
		} else {
			result.Updated++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.UpsertResult{}, fmt.Errorf("commit accessory import tx: %w", err)
	}
	return result, nil
}

func scanAccessoryRow(row pgx.Row) (domain.Accessory, error) {
	var a domain.Accessory
	if err := row.Scan(
		&a.ID,
		&a.StyleNumber,
		&a.AccessoryNumber,
		&a.AccessoryName,
		&a.AccessoryType,
		&a.AccessoryImage,
		&a.StockUnit,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return domain.Accessory{}, err
	}
	return a, nil
}
