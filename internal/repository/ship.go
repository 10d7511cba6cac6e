package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"rawstock/internal/domain"
	"rawstock/internal/stock"
)

// ShipStyle deducts one garment's fabric consumption from the main ledger
// under a single transaction. Stock rows are locked in fabric-number order so
// concurrent ships serialize instead of losing updates. Slots sharing a
// fabric number chain their deductions through the same locked balance.
func (r *Repository) ShipStyle(ctx context.Context, styleNumber int, size domain.Size) ([]domain.FabricDeduction, error) {
	avgs, err := r.ListFabricAverages(ctx, styleNumber)
	if err != nil {
		return nil, err
	}
	if len(avgs) == 0 {
		return nil, fmt.Errorf("style %d has no fabric averages: %w", styleNumber, ErrNotFound)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin ship tx: %w", err)
	}
	defer tx.Rollback(ctx)

	balances, err := lockBalances(ctx, tx, fabricNumbers(avgs))
	if err != nil {
		return nil, err
	}

	deductions, err := stock.DeductAll(balances, avgs, size)
	if err != nil {
		return nil, err
	}

	for _, d := range deductions {
		if d.Status != domain.StatusApplied {
			continue
		}
		if _, err := tx.Exec(ctx, `
			UPDATE fabric_stock SET available_stock = $2, updated_at = NOW()
			WHERE fabric_number = $1
		`, d.FabricNo, balances[d.FabricNo]); err != nil {
			return nil, fmt.Errorf("apply deduction to fabric %d: %w", d.FabricNo, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit ship tx: %w", err)
	}
	return deductions, nil
}

func fabricNumbers(avgs []domain.FabricAverage) []int {
	seen := make(map[int]struct{}, len(avgs))
	numbers := make([]int, 0, len(avgs))
	for _, a := range avgs {
		if _, ok := seen[a.FabricNo]; ok {
			continue
		}
		seen[a.FabricNo] = struct{}{}
		numbers = append(numbers, a.FabricNo)
	}
	return numbers
}

func lockBalances(ctx context.Context, tx pgx.Tx, numbers []int) (map[int]float64, error) {
	rows, err := tx.Query(ctx, `
		SELECT fabric_number, available_stock
		FROM fabric_stock
		WHERE fabric_number = ANY($1)
		ORDER BY fabric_number ASC
		FOR UPDATE
	`, numbers)
	if err != nil {
		return nil, fmt.Errorf("lock stock rows: %w", err)
	}
	defer rows.Close()

	balances := make(map[int]float64, len(numbers))
	for rows.Next() {
		var number int
		var balance float64
		if err := rows.Scan(&number, &balance); err != nil {
			return nil, fmt.Errorf("scan locked balance: %w", err)
		}
		balances[number] = balance
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate locked balances: %w", err)
	}
	return balances, nil
}

var ErrBatchExists = errors.New("ship batch already recorded")

// CreateShipBatch stores a bulk ship summary under its idempotency key. A
// duplicate key reports ErrBatchExists so the caller can return the stored
// summary instead of re-deducting.
func (r *Repository) CreateShipBatch(ctx context.Context, summary domain.BatchSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode batch summary: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO ship_batches (batch_key, summary)
		VALUES ($1, $2)
		ON CONFLICT (batch_key) DO NOTHING
	`, summary.BatchKey, payload)
	if err != nil {
		return fmt.Errorf("store ship batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBatchExists
	}
	return nil
}

func (r *Repository) GetShipBatch(ctx context.Context, batchKey string) (*domain.BatchSummary, error) {
	var payload []byte
	err := r.pool.QueryRow(ctx, `
		SELECT summary FROM ship_batches WHERE batch_key = $1
	`, batchKey).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get ship batch %s: %w", batchKey, err)
	}

	var summary domain.BatchSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, fmt.Errorf("decode batch summary: %w", err)
	}
	return &summary, nil
}
