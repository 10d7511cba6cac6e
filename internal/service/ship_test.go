package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"rawstock/internal/domain"
)

func TestRunBatchPreservesOrder(t *testing.T) {
	ids := []int64{5, 3, 9, 1}
	outcomes := runBatch(context.Background(), ids, 2, func(_ context.Context, id int64) domain.ShipOutcome {
		return domain.ShipOutcome{OrderID: id, Status: domain.StatusApplied}
	})
	if len(outcomes) != len(ids) {
		t.Fatalf("got %d outcomes, want %d", len(outcomes), len(ids))
	}
	for i, id := range ids {
		if outcomes[i].OrderID != id {
			t.Fatalf("outcome %d has order %d, want %d", i, outcomes[i].OrderID, id)
		}
	}
}

func TestRunBatchSettlesEveryOrder(t *testing.T) {
	ids := []int64{1, 2, 3, 4, 5}
	outcomes := runBatch(context.Background(), ids, 3, func(_ context.Context, id int64) domain.ShipOutcome {
		if id%2 == 0 {
			return domain.ShipOutcome{OrderID: id, Status: domain.StatusFailed, Reason: "boom"}
		}
		return domain.ShipOutcome{OrderID: id, Status: domain.StatusApplied}
	})

	applied, failed := 0, 0
	for _, o := range outcomes {
		switch o.Status {
		case domain.StatusApplied:
			applied++
		case domain.StatusFailed:
			failed++
		}
	}
	if applied != 3 || failed != 2 {
		t.Fatalf("applied=%d failed=%d, want 3/2", applied, failed)
	}
}

func TestRunBatchBoundsConcurrency(t *testing.T) {
	const workers = 4
	var inFlight, peak int64
	var mu sync.Mutex

	ids := make([]int64, 50)
	for i := range ids {
		ids[i] = int64(i)
	}

	runBatch(context.Background(), ids, workers, func(_ context.Context, id int64) domain.ShipOutcome {
		current := atomic.AddInt64(&inFlight, 1)
		mu.Lock()
		if current > peak {
			peak = current
		}
		mu.Unlock()
		atomic.AddInt64(&inFlight, -1)
		return domain.ShipOutcome{OrderID: id, Status: domain.StatusApplied}
	})

	if peak > workers {
		t.Fatalf("peak concurrency %d exceeded %d workers", peak, workers)
	}
}

type fakeScanner struct {
	orders map[int64]domain.ScannedOrder
	err    error
	calls  int64
}

func (f *fakeScanner) LookupOrder(_ context.Context, orderID int64) (domain.ScannedOrder, error) {
	atomic.AddInt64(&f.calls, 1)
	if f.err != nil {
		return domain.ScannedOrder{}, f.err
	}
	order, ok := f.orders[orderID]
	if !ok {
		return domain.ScannedOrder{}, fmt.Errorf("order %d not found", orderID)
	}
	return order, nil
}

func TestShipOrderScanFailure(t *testing.T) {
	svc := New(nil, &fakeScanner{err: errors.New("scan service down")}, nil, "secret")
	outcome := svc.ShipOrder(context.Background(), 1001)
	if outcome.Status != domain.StatusFailed {
		t.Fatalf("status = %s, want failed", outcome.Status)
	}
	if outcome.OrderID != 1001 || outcome.Reason == "" {
		t.Fatalf("outcome = %+v", outcome)
	}
}

func TestShipStyleRejectsUnknownSize(t *testing.T) {
	svc := New(nil, nil, nil, "secret")
	outcome := svc.ShipStyle(context.Background(), 4512, "GIANT")
	if outcome.Status != domain.StatusFailed {
		t.Fatalf("status = %s, want failed", outcome.Status)
	}
	if outcome.Reason == "" {
		t.Fatal("expected a reason naming the unknown size")
	}
}
