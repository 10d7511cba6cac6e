package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"rawstock/internal/domain"
)

type RelationListFilter struct {
	Search string
	Usable *bool
	Limit  int
	Offset int
}

func (r *Repository) ListRelations(ctx context.Context, filter RelationListFilter) ([]domain.FabricRelation, error) {
	limit := normalizeLimit(filter.Limit)
	offset := normalizeOffset(filter.Offset)
	search := strings.TrimSpace(filter.Search)

	base := `
		SELECT id, fabric_number, fabric_in_kg, fabric_in_meter, updated_at
		FROM fabric_relations
		WHERE ($1 = '' OR fabric_number::text = $1)
	`
	args := []any{search}
	argIndex := 2
	if filter.Usable != nil {
		if *filter.Usable {
			base += " AND fabric_in_meter > 0"
		} else {
			base += " AND fabric_in_meter <= 0"
		}
	}
	base += fmt.Sprintf(" ORDER BY fabric_number ASC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, base, args...)
	if err != nil {
		return nil, fmt.Errorf("list relations: %w", err)
	}
	defer rows.Close()

	relations := make([]domain.FabricRelation, 0, limit)
	for rows.Next() {
		rel, err := scanRelationRow(rows)
		if err != nil {
			return nil, err
		}
		relations = append(relations, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate relations: %w", err)
	}
	return relations, nil
}

func (r *Repository) GetRelation(ctx context.Context, fabricNumber int) (*domain.FabricRelation, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, fabric_number, fabric_in_kg, fabric_in_meter, updated_at
		FROM fabric_relations
		WHERE fabric_number = $1
	`, fabricNumber)
	rel, err := scanRelationRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get relation %d: %w", fabricNumber, err)
	}
	return &rel, nil
}

// BulkUpsertRelations writes relation rows latest-wins: a later row for the
// same fabric number in the same upload overwrites the earlier one.
func (r *Repository) BulkUpsertRelations(ctx context.Context, rows []domain.RelationImportRow) (domain.UpsertResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.UpsertResult{}, fmt.Errorf("begin relation import tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result := domain.UpsertResult{Total: len(rows)}
	for _, row := range rows {
		var inserted bool
		err := tx.QueryRow(ctx, `
			INSERT INTO fabric_relations (fabric_number, fabric_in_kg, fabric_in_meter)
			VALUES ($1, $2, $3)
			ON CONFLICT (fabric_number) DO UPDATE SET
				fabric_in_kg = EXCLUDED.fabric_in_kg,
				fabric_in_meter = EXCLUDED.fabric_in_meter,
				updated_at = NOW()
			RETURNING (xmax = 0)
		`, row.FabricNumber, row.FabricInKG, row.FabricInMeter).Scan(&inserted)
		if err != nil {
			return domain.UpsertResult{}, fmt.Errorf("upsert relation %d: %w", row.FabricNumber, err)
		}
		if inserted {
			result.Added++
		} else {
			result.Updated++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.UpsertResult{}, fmt.Errorf("commit relation import tx: %w", err)
	}
	return result, nil
}

func getRelationTx(ctx context.Context, tx pgx.Tx, fabricNumber int) (*domain.FabricRelation, error) {
	row := tx.QueryRow(ctx, `
		SELECT id, fabric_number, fabric_in_kg, fabric_in_meter, updated_at
		FROM fabric_relations
		WHERE fabric_number = $1
		FOR UPDATE
	`, fabricNumber)
	rel, err := scanRelationRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get relation %d: %w", fabricNumber, err)
	}
	return &rel, nil
}

func upsertRelationTx(ctx context.Context, tx pgx.Tx, row domain.RelationImportRow) (*domain.FabricRelation, error) {
	out := tx.QueryRow(ctx, `
		INSERT INTO fabric_relations (fabric_number, fabric_in_kg, fabric_in_meter)
		VALUES ($1, $2, $3)
		ON CONFLICT (fabric_number) DO UPDATE SET
			fabric_in_kg = EXCLUDED.fabric_in_kg,
			fabric_in_meter = EXCLUDED.fabric_in_meter,
			updated_at = NOW()
		RETURNING id, fabric_number, fabric_in_kg, fabric_in_meter, updated_at
	`, row.FabricNumber, row.FabricInKG, row.FabricInMeter)
	rel, err := scanRelationRow(out)
	if err != nil {
		return nil, fmt.Errorf("upsert relation %d: %w", row.FabricNumber, err)
	}
	return &rel, nil
}

func scanRelationRow(row pgx.Row) (domain.FabricRelation, error) {
	var rel domain.FabricRelation
	if err := row.Scan(&rel.ID, &rel.FabricNumber, &rel.FabricInKG, &rel.FabricInMeter, &rel.UpdatedAt); err != nil {
		return domain.FabricRelation{}, err
	}
	return rel, nil
}
