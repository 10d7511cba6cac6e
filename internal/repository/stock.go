package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"rawstock/internal/domain"
	"rawstock/internal/stock"
)

type StockListFilter struct {
	Search    string
	Limit     int
	Offset    int
	Threshold *float64
}

const fabricStockColumns = `
	id,
	fabric_number,
	fabric_name,
	available_stock,
	unit,
	location,
	style_numbers,
	created_at,
	updated_at
`

func (r *Repository) ListFabricStock(ctx context.Context, filter StockListFilter) ([]domain.FabricStock, error) {
	limit := normalizeLimit(filter.Limit)
	offset := normalizeOffset(filter.Offset)
	search := strings.TrimSpace(filter.Search)

	base := `
		SELECT ` + fabricStockColumns + `
		FROM fabric_stock
		WHERE ($1 = '' OR fabric_name ILIKE '%' || $1 || '%' OR fabric_number::text = $1)
	`
	args := []any{search}
	argIndex := 2
	if filter.Threshold != nil {
		base += fmt.Sprintf(" AND available_stock <= $%d", argIndex)
		args = append(args, *filter.Threshold)
		argIndex++
	}
	base += fmt.Sprintf(" ORDER BY fabric_number ASC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, base, args...)
	if err != nil {
		return nil, fmt.Errorf("list fabric stock: %w", err)
	}
	defer rows.Close()

	stocks := make([]domain.FabricStock, 0, limit)
	for rows.Next() {
		s, err := scanFabricStockRow(rows)
		if err != nil {
			return nil, err
		}
		stocks = append(stocks, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fabric stock: %w", err)
	}
	return stocks, nil
}

func (r *Repository) GetFabricStock(ctx context.Context, fabricNumber int) (*domain.FabricStock, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+fabricStockColumns+`
		FROM fabric_stock
		WHERE fabric_number = $1
	`, fabricNumber)
	s, err := scanFabricStockRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get fabric stock %d: %w", fabricNumber, err)
	}
	return &s, nil
}

// BulkUpsertStock inserts or refreshes fabric rows from an upload. Existing
// rows keep their balance; name and style list are overwritten.
func (r *Repository) BulkUpsertStock(ctx context.Context, rows []domain.StockImportRow) (domain.StockImportResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.StockImportResult{}, fmt.Errorf("begin stock import tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result := domain.StockImportResult{Total: len(rows)}
	for _, row := range rows {
		// xmax = 0 only on freshly inserted rows.
		var inserted bool
		err := tx.QueryRow(ctx, `
			INSERT INTO fabric_stock (fabric_number, fabric_name, style_numbers)
			VALUES ($1, $2, $3)
			ON CONFLICT (fabric_number) DO UPDATE SET
				fabric_name = EXCLUDED.fabric_name,
				style_numbers = EXCLUDED.style_numbers,
				updated_at = NOW()
			RETURNING (xmax = 0)
		`, row.FabricNumber, row.FabricName, row.StyleNumbers).Scan(&inserted)
		if err != nil {
			return domain.StockImportResult{}, fmt.Errorf("upsert fabric %d: %w", row.FabricNumber, err)
		}
		if inserted {
			result.Inserted++
		} else {
			result.Updated++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.StockImportResult{}, fmt.Errorf("commit stock import tx: %w", err)
	}
	return result, nil
}

// AddStock applies the add operation under one transaction. Vendor adds
// convert kilograms through the fabric's relation or seed a new relation from
// the raw units; Store2 adds transfer the entire secondary-store balance.
func (r *Repository) AddStock(ctx context.Context, in domain.AddStockInput) (*domain.AddStockResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin add stock tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var result domain.AddStockResult

	rel, err := getRelationTx(ctx, tx, in.FabricNumber)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	quantityKG := in.Quantity
	if in.Source == domain.SourceStore2 {
		// The whole store2 balance moves; partial transfers are not a thing.
		var balance float64
		err := tx.QueryRow(ctx, `
			SELECT available_stock FROM store2_stock
			WHERE fabric_number = $1
			FOR UPDATE
		`, in.FabricNumber).Scan(&balance)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("fabric %d has no store2 balance: %w", in.FabricNumber, ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("load store2 balance: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			UPDATE store2_stock SET available_stock = 0, updated_at = NOW()
			WHERE fabric_number = $1
		`, in.FabricNumber); err != nil {
			return nil, fmt.Errorf("clear store2 balance: %w", err)
		}
		quantityKG = balance
		result.Store2Cleared = true
	}

	meters, newRatio, createRelation := 0.0, 0.0, false
	if in.Source == domain.SourceStore2 {
		if rel == nil || !rel.Usable() {
			return nil, fmt.Errorf("fabric %d has no usable meter/kg relation for store2 transfer", in.FabricNumber)
		}
		meters = stock.MetersFromKg(quantityKG, rel.FabricInMeter)
	} else {
		meters, newRatio, createRelation = stock.ResolveAdd(in, rel)
		if meters <= 0 {
			return nil, fmt.Errorf("fabric %d: add resolves to no meters; provide kg and meter units or a relation", in.FabricNumber)
		}
	}

	if createRelation {
		created, err := upsertRelationTx(ctx, tx, domain.RelationImportRow{
			FabricNumber:  in.FabricNumber,
			FabricInKG:    1,
			FabricInMeter: newRatio,
		})
		if err != nil {
			return nil, err
		}
		result.RelationCreated = created
	}

	ratioUsed := newRatio
	if rel != nil && rel.Usable() {
		ratioUsed = rel.FabricInMeter
	}

	row := tx.QueryRow(ctx, `
		UPDATE fabric_stock SET
			available_stock = available_stock + $2,
			location = CASE WHEN $3 <> '' THEN $3 ELSE location END,
			updated_at = NOW()
		WHERE fabric_number = $1
		RETURNING `+fabricStockColumns+`
	`, in.FabricNumber, meters, strings.TrimSpace(in.Location))
	updated, err := scanFabricStockRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("apply add to fabric %d: %w", in.FabricNumber, err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO purchase_history (fabric_number, source, quantity_kg, quantity_meters, ratio_used, location)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, in.FabricNumber, string(in.Source), quantityKG, meters, ratioUsed, strings.TrimSpace(in.Location)); err != nil {
		return nil, fmt.Errorf("record purchase history: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit add stock tx: %w", err)
	}

	result.Stock = updated
	result.AddedMeters = meters
	return &result, nil
}

// UpdateStockQuantity adds a plain meter delta to an existing fabric. The
// balance never drops below zero.
func (r *Repository) UpdateStockQuantity(ctx context.Context, fabricNumber int, delta float64) (*domain.FabricStock, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE fabric_stock SET
			available_stock = GREATEST(0, available_stock + $2),
			updated_at = NOW()
		WHERE fabric_number = $1
		RETURNING `+fabricStockColumns+`
	`, fabricNumber, delta)
	s, err := scanFabricStockRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update fabric %d: %w", fabricNumber, err)
	}
	return &s, nil
}

// LowStock lists fabrics at or under the threshold, with the shortfall
// against it.
func (r *Repository) LowStock(ctx context.Context, threshold float64) ([]domain.LowStockRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT fabric_number, fabric_name, available_stock, unit, location,
			GREATEST(0, $1 - available_stock) AS needed
		FROM fabric_stock
		WHERE available_stock <= $1
		ORDER BY available_stock ASC, fabric_number ASC
	`, threshold)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var list []domain.LowStockRow
	for rows.Next() {
		var row domain.LowStockRow
		if err := rows.Scan(&row.FabricNumber, &row.FabricName, &row.AvailableStock, &row.Unit, &row.Location, &row.Needed); err != nil {
			return nil, fmt.Errorf("scan low stock row: %w", err)
		}
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate low stock: %w", err)
	}
	return list, nil
}

func (r *Repository) ListStore2Stock(ctx context.Context, search string) ([]domain.Store2Stock, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, fabric_number, fabric_name, available_stock, unit, location, created_at, updated_at
		FROM store2_stock
		WHERE ($1 = '' OR fabric_name ILIKE '%' || $1 || '%' OR fabric_number::text = $1)
		ORDER BY fabric_number ASC
	`, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("list store2 stock: %w", err)
	}
	defer rows.Close()

	var list []domain.Store2Stock
	for rows.Next() {
		var s domain.Store2Stock
		if err := rows.Scan(&s.ID, &s.FabricNumber, &s.FabricName, &s.AvailableStock, &s.Unit, &s.Location, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan store2 row: %w", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate store2 stock: %w", err)
	}
	return list, nil
}

func (r *Repository) ListPurchaseHistory(ctx context.Context, fabricNumber int, limit int) ([]domain.PurchaseRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, fabric_number, source, quantity_kg, quantity_meters, ratio_used, location, created_at
		FROM purchase_history
		WHERE ($1 = 0 OR fabric_number = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`, fabricNumber, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list purchase history: %w", err)
	}
	defer rows.Close()

	var list []domain.PurchaseRecord
	for rows.Next() {
		var p domain.PurchaseRecord
		if err := rows.Scan(&p.ID, &p.FabricNumber, &p.Source, &p.QuantityKG, &p.QuantityMeters, &p.RatioUsed, &p.Location, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase record: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate purchase history: %w", err)
	}
	return list, nil
}

func scanFabricStockRow(row pgx.Row) (domain.FabricStock, error) {
	var s domain.FabricStock
	if err := row.Scan(
		&s.ID,
		&s.FabricNumber,
		&s.FabricName,
		&s.AvailableStock,
		&s.Unit,
		&s.Location,
		&s.StyleNumbers,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		return domain.FabricStock{}, err
	}
	return s, nil
}
