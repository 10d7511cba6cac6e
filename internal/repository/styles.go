package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"rawstock/internal/domain"
)

func (r *Repository) ListStyleDetails(ctx context.Context, search string, limit, offset int) ([]domain.StyleDetail, error) {
	limit = normalizeLimit(limit)
	offset = normalizeOffset(offset)

	rows, err := r.pool.Query(ctx, `
		SELECT id, style_number, pattern_number, article_type, style_image, updated_at
		FROM style_details
		WHERE ($1 = '' OR style_number::text = $1 OR pattern_number ILIKE '%' || $1 || '%')
		ORDER BY style_number ASC
		LIMIT $2 OFFSET $3
	`, strings.TrimSpace(search), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list style details: %w", err)
	}
	defer rows.Close()

	details := make([]domain.StyleDetail, 0, limit)
	for rows.Next() {
		var d domain.StyleDetail
		if err := rows.Scan(&d.ID, &d.StyleNumber, &d.PatternNumber, &d.ArticleType, &d.StyleImage, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan style detail: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate style details: %w", err)
	}

	for i := range details {
		if err := r.loadStyleChildren(ctx, &details[i]); err != nil {
			return nil, err
		}
	}
	return details, nil
}

func (r *Repository) GetStyleDetail(ctx context.Context, styleNumber int) (*domain.StyleDetail, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, style_number, pattern_number, article_type, style_image, updated_at
		FROM style_details
		WHERE style_number = $1
	`, styleNumber)

	var d domain.StyleDetail
	if err := row.Scan(&d.ID, &d.StyleNumber, &d.PatternNumber, &d.ArticleType, &d.StyleImage, &d.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get style %d: %w", styleNumber, err)
	}
	if err := r.loadStyleChildren(ctx, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) loadStyleChildren(ctx context.Context, d *domain.StyleDetail) error {
	rows, err := r.pool.Query(ctx, `
		SELECT slot, fabric_no, fabric_name, fabric_image
		FROM style_fabrics
		WHERE style_number = $1
		ORDER BY slot ASC
	`, d.StyleNumber)
	if err != nil {
		return fmt.Errorf("load style %d fabrics: %w", d.StyleNumber, err)
	}
	defer rows.Close()
	for rows.Next() {
		var f domain.StyleFabric
		if err := rows.Scan(&f.Slot, &f.FabricNo, &f.FabricName, &f.FabricImage); err != nil {
			return fmt.Errorf("scan style fabric: %w", err)
		}
		d.Fabrics = append(d.Fabrics, f)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate style fabrics: %w", err)
	}

	accRows, err := r.pool.Query(ctx, `
		SELECT slot, accessory_no, accessory_name, accessory_type, accessory_image
		FROM style_accessories
		WHERE style_number = $1
		ORDER BY slot ASC
	`, d.StyleNumber)
	if err != nil {
		return fmt.Errorf("load style %d accessories: %w", d.StyleNumber, err)
	}
	defer accRows.Close()
	for accRows.Next() {
		var a domain.StyleAccessory
		if err := accRows.Scan(&a.Slot, &a.AccessoryNo, &a.AccessoryName, &a.AccessoryType, &a.AccessoryImage); err != nil {
			return fmt.Errorf("scan style accessory: %w", err)
		}
		d.Accessories = append(d.Accessories, a)
	}
	if err := accRows.Err(); err != nil {
		return fmt.Errorf("iterate style accessories: %w", err)
	}
	return nil
}

// BulkUpsertStyles rewrites each style's header and replaces its slot rows.
func (r *Repository) BulkUpsertStyles(ctx context.Context, rows []domain.StyleImportRow) (domain.UpsertResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.UpsertResult{}, fmt.Errorf("begin style import tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result := domain.UpsertResult{Total: len(rows)}
	for _, row := range rows {
		var inserted bool
		err := tx.QueryRow(ctx, `
			INSERT INTO style_details (style_number, pattern_number, article_type, style_image)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (style_number) DO UPDATE SET
				pattern_number = EXCLUDED.pattern_number,
				article_type = EXCLUDED.article_type,
				style_image = EXCLUDED.style_image,
				updated_at = NOW()
			RETURNING (xmax = 0)
		`, row.StyleNumber, row.PatternNumber, row.ArticleType, row.StyleImage).Scan(&inserted)
		if err != nil {
			return domain.UpsertResult{}, fmt.Errorf("upsert style %d: %w", row.StyleNumber, err)
		}
		if inserted {
			result.Added++
		} else {
			result.Updated++
		}

		if _, err := tx.Exec(ctx, `DELETE FROM style_fabrics WHERE style_number = $1`, row.StyleNumber); err != nil {
			return domain.UpsertResult{}, fmt.Errorf("clear style %d fabrics: %w", row.StyleNumber, err)
		}
		for _, f := range row.Fabrics {
			if _, err := tx.Exec(ctx, `
				INSERT INTO style_fabrics (style_number, slot, fabric_no, fabric_name, fabric_image)
				VALUES ($1, $2, $3, $4, $5)
			`, row.StyleNumber, f.Slot, f.FabricNo, f.FabricName, f.FabricImage); err != nil {
				return domain.UpsertResult{}, fmt.Errorf("insert style %d fabric slot %d: %w", row.StyleNumber, f.Slot, err)
			}
		}

		if _, err := tx.Exec(ctx, `DELETE FROM style_accessories WHERE style_number = $1`, row.StyleNumber); err != nil {
			return domain.UpsertResult{}, fmt.Errorf("clear style %d accessories: %w", row.StyleNumber, err)
		}
		for _, a := range row.Accessories {
			if _, err := tx.Exec(ctx, `
				INSERT INTO style_accessories (style_number, slot, accessory_no, accessory_name, accessory_type, accessory_image)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, row.StyleNumber, a.Slot, a.AccessoryNo, a.AccessoryName, a.AccessoryType, a.AccessoryImage); err != nil {
				return domain.UpsertResult{}, fmt.Errorf("insert style %d accessory slot %d: %w", row.StyleNumber, a.Slot, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.UpsertResult{}, fmt.Errorf("commit style import tx: %w", err)
	}
	return result, nil
}

// UpsertAverages writes consumption tables keyed by (style_number, fabric_no)
// and (style_number, accessory_no).
func (r *Repository) UpsertAverages(ctx context.Context, fabrics []domain.FabricAverage, accessories []domain.AccessoryAverage) (domain.UpsertResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.UpsertResult{}, fmt.Errorf("begin average import tx: %w", err)
	}
	defer tx.Rollback(ctx)

	result := domain.UpsertResult{Total: len(fabrics) + len(accessories)}
	for _, fa := range fabrics {
		var inserted bool
		err := tx.QueryRow(ctx, `
			INSERT INTO fabric_averages (style_number, fabric_no, average_xxs_xs, average_s_m, average_l_xl, average_2xl_3xl, average_4xl_5xl, width)
			VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE(NULLIF($8, ''), 'Normal'))
			ON CONFLICT (style_number, fabric_no) DO UPDATE SET
				average_xxs_xs = EXCLUDED.average_xxs_xs,
				average_s_m = EXCLUDED.average_s_m,
				average_l_xl = EXCLUDED.average_l_xl,
				average_2xl_3xl = EXCLUDED.average_2xl_3xl,
				average_4xl_5xl = EXCLUDED.average_4xl_5xl,
				width = EXCLUDED.width,
				updated_at = NOW()
			RETURNING (xmax = 0)
		`, fa.StyleNumber, fa.FabricNo, fa.AverageXXSXS, fa.AverageSM, fa.AverageLXL, fa.Average2XL3XL, fa.Average4XL5XL, fa.Width).Scan(&inserted)
		if err != nil {
			return domain.UpsertResult{}, fmt.Errorf("upsert average %d/%d: %w", fa.StyleNumber, fa.FabricNo, err)
		}
		if inserted {
			result.Added++
		} else {
			result.Updated++
		}
	}

	for _, aa := range accessories {
		var inserted bool
		err := tx.QueryRow(ctx, `
			INSERT INTO accessory_averages (style_number, accessory_no, average_xxs_m, average_l_5xl)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (style_number, accessory_no) DO UPDATE SET
				average_xxs_m = EXCLUDED.average_xxs_m,
				average_l_5xl = EXCLUDED.average_l_5xl,
				updated_at = NOW()
			RETURNING (xmax = 0)
		`, aa.StyleNumber, aa.AccessoryNo, aa.AverageXXSM, aa.AverageL5XL).Scan(&inserted)
		if err != nil {
			return domain.UpsertResult{}, fmt.Errorf("upsert accessory average %d/%s: %w", aa.StyleNumber, aa.AccessoryNo, err)
		}
		if inserted {
			result.Added++
		} else {
			result.Updated++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.UpsertResult{}, fmt.Errorf("commit average import tx: %w", err)
	}
	return result, nil
}

// ListFabricAverages returns a style's consumption rows in slot order so
// chained deductions see slots in upload order.
func (r *Repository) ListFabricAverages(ctx context.Context, styleNumber int) ([]domain.FabricAverage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT fa.style_number, fa.fabric_no, fa.average_xxs_xs, fa.average_s_m, fa.average_l_xl, fa.average_2xl_3xl, fa.average_4xl_5xl, fa.width
		FROM fabric_averages fa
		LEFT JOIN style_fabrics sf
			ON sf.style_number = fa.style_number AND sf.fabric_no = fa.fabric_no
		WHERE fa.style_number = $1
		ORDER BY COALESCE(sf.slot, 99) ASC, fa.fabric_no ASC
	`, styleNumber)
	if err != nil {
		return nil, fmt.Errorf("list fabric averages for style %d: %w", styleNumber, err)
	}
	defer rows.Close()

	var list []domain.FabricAverage
	for rows.Next() {
		var fa domain.FabricAverage
		if err := rows.Scan(&fa.StyleNumber, &fa.FabricNo, &fa.AverageXXSXS, &fa.AverageSM, &fa.AverageLXL, &fa.Average2XL3XL, &fa.Average4XL5XL, &fa.Width); err != nil {
			return nil, fmt.Errorf("scan fabric average: %w", err)
		}
		list = append(list, fa)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fabric averages: %w", err)
	}
	return list, nil
}

func (r *Repository) ListAccessoryAverages(ctx context.Context, styleNumber int) ([]domain.AccessoryAverage, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT style_number, accessory_no, average_xxs_m, average_l_5xl
		FROM accessory_averages
		WHERE style_number = $1
		ORDER BY accessory_no ASC
	`, styleNumber)
	if err != nil {
		return nil, fmt.Errorf("list accessory averages for style %d: %w", styleNumber, err)
	}
	defer rows.Close()

	var list []domain.AccessoryAverage
	for rows.Next() {
		var aa domain.AccessoryAverage
		if err := rows.Scan(&aa.StyleNumber, &aa.AccessoryNo, &aa.AverageXXSM, &aa.AverageL5XL); err != nil {
			return nil, fmt.Errorf("scan accessory average: %w", err)
		}
		list = append(list, aa)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accessory averages: %w", err)
	}
	return list, nil
}
