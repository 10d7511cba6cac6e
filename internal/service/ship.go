package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"rawstock/internal/domain"
	"rawstock/internal/repository"
	"rawstock/internal/stock"
)

// bulkShipWorkers bounds the scan-service fan-out of a bulk ship.
const bulkShipWorkers = 8

// ShipOrder resolves an order through the scan service and deducts its
// garment's fabric consumption. Failures come back as a typed outcome, not an
// error, so bulk callers can settle every order.
func (s *Service) ShipOrder(ctx context.Context, orderID int64) domain.ShipOutcome {
	order, err := s.scanner.LookupOrder(ctx, orderID)
	if err != nil {
		return domain.ShipOutcome{
			OrderID: orderID,
			Status:  domain.StatusFailed,
			Reason:  fmt.Sprintf("scan lookup: %v", err),
		}
	}
	outcome := s.ShipStyle(ctx, order.StyleNumber, order.Size)
	outcome.OrderID = orderID
	if s.catalog != nil {
		// Enrichment only; a catalogue outage never fails the ship.
		if styleID, err := s.catalog.LookupStyleID(ctx, order.StyleNumber); err == nil {
			outcome.StyleID = styleID
		}
	}
	return outcome
}

// ShipStyle deducts one garment of the given style and size from the ledger.
func (s *Service) ShipStyle(ctx context.Context, styleNumber int, size domain.Size) domain.ShipOutcome {
	outcome := domain.ShipOutcome{
		StyleNumber: styleNumber,
		Size:        size,
		Status:      domain.StatusFailed,
	}

	size = stock.NormalizeSize(string(size))
	if _, err := stock.FabricBand(size); err != nil {
		outcome.Reason = err.Error()
		return outcome
	}
	outcome.Size = size

	deductions, err := s.repo.ShipStyle(ctx, styleNumber, size)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			outcome.Status = domain.StatusSkipped
			outcome.Reason = fmt.Sprintf("style %d not found", styleNumber)
			return outcome
		}
		outcome.Reason = err.Error()
		return outcome
	}

	outcome.Deductions = deductions
	outcome.Accessories = s.shipAccessories(ctx, styleNumber, size)
	outcome.Status = domain.StatusApplied
	for _, d := range deductions {
		if d.Status == domain.StatusFailed {
			outcome.Status = domain.StatusFailed
			outcome.Reason = d.Reason
			break
		}
	}
	return outcome
}

// shipAccessories applies the style's 2-band accessory consumption next to
// the fabric deductions. Accessory failures mark their own items and never
// undo the fabric movement.
func (s *Service) shipAccessories(ctx context.Context, styleNumber int, size domain.Size) []domain.AccessoryDeduction {
	avgs, err := s.repo.ListAccessoryAverages(ctx, styleNumber)
	if err != nil {
		return []domain.AccessoryDeduction{{
			Status: domain.StatusFailed,
			Reason: fmt.Sprintf("list accessory averages: %v", err),
		}}
	}
	if len(avgs) == 0 {
		return nil
	}

	out := make([]domain.AccessoryDeduction, 0, len(avgs))
	for _, aa := range avgs {
		d := domain.AccessoryDeduction{AccessoryNo: aa.AccessoryNo}

		per, err := stock.AccessoryAverageForSize(aa, size)
		if err != nil {
			d.Status, d.Reason = domain.StatusFailed, err.Error()
			out = append(out, d)
			continue
		}
		d.Average = per

		acc, err := s.repo.GetAccessory(ctx, aa.AccessoryNo)
		if err != nil {
			d.Status = domain.StatusFailed
			if errors.Is(err, repository.ErrNotFound) {
				d.Reason = "accessory not in stock ledger"
			} else {
				d.Reason = err.Error()
			}
			out = append(out, d)
			continue
		}
		d.Before = acc.StockUnit

		after, status, reason := stock.AccessoryDeduct(acc.StockUnit, per)
		d.After, d.Status, d.Reason = after, status, reason
		if status == domain.StatusApplied {
			if _, err := s.repo.AdjustAccessoryStock(ctx, aa.AccessoryNo, after-acc.StockUnit); err != nil {
				d.Status, d.Reason = domain.StatusFailed, err.Error()
				d.After = d.Before
			}
		}
		out = append(out, d)
	}
	return out
}

// ShipBulk settles every order in the list and records the summary under the
// batch key. A replayed key returns the stored summary without touching the
// ledger. An empty key mints one.
func (s *Service) ShipBulk(ctx context.Context, batchKey string, orderIDs []int64) (*domain.BatchSummary, error) {
	if len(orderIDs) == 0 {
		return nil, invalidf("order list is empty")
	}

	if batchKey == "" {
		batchKey = uuid.NewString()
	} else {
		if _, err := uuid.Parse(batchKey); err != nil {
			return nil, invalidf("idempotency key must be a uuid: %v", err)
		}
		if stored, err := s.repo.GetShipBatch(ctx, batchKey); err == nil {
			return stored, nil
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	outcomes := runBatch(ctx, orderIDs, bulkShipWorkers, s.ShipOrder)

	summary := domain.BatchSummary{
		BatchKey:  batchKey,
		Total:     len(outcomes),
		Outcomes:  outcomes,
		CreatedAt: time.Now().UTC(),
	}
	for _, o := range outcomes {
		switch o.Status {
		case domain.StatusApplied:
			summary.Succeeded++
		case domain.StatusSkipped:
			summary.Skipped++
		default:
			summary.Failed++
		}
	}

	if err := s.repo.CreateShipBatch(ctx, summary); err != nil {
		if errors.Is(err, repository.ErrBatchExists) {
			// Lost the race against a concurrent replay of the same key.
			return s.repo.GetShipBatch(ctx, batchKey)
		}
		return nil, err
	}
	return &summary, nil
}

func (s *Service) GetShipBatch(ctx context.Context, batchKey string) (*domain.BatchSummary, error) {
	return s.repo.GetShipBatch(ctx, batchKey)
}

// runBatch fans the order ids over a bounded worker pool. Every order
// settles; results come back in input order.
func runBatch(ctx context.Context, orderIDs []int64, workers int, ship func(context.Context, int64) domain.ShipOutcome) []domain.ShipOutcome {
	if workers < 1 {
		workers = 1
	}

	outcomes := make([]domain.ShipOutcome, len(orderIDs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, orderID := range orderIDs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, orderID int64) {
			defer wg.Done()
			defer func() { <-sem }()
			outcomes[i] = ship(ctx, orderID)
		}(i, orderID)
	}
	wg.Wait()
	return outcomes
}
