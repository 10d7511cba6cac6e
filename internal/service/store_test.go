package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"rawstock/internal/domain"
	"rawstock/internal/repository"
)

// fakeStore implements the slices of Store each test touches; anything else
// panics through the embedded nil interface.
type fakeStore struct {
	Store

	relations     map[int]*domain.FabricRelation
	batches       map[string]*domain.BatchSummary
	deductions    []domain.FabricDeduction
	accessoryAvgs []domain.AccessoryAverage
	accessories   map[string]*domain.Accessory

	addCalls    []domain.AddStockInput
	created     []domain.BatchSummary
	adjustments map[string]int
}

func (f *fakeStore) GetRelation(_ context.Context, fabricNumber int) (*domain.FabricRelation, error) {
	rel, ok := f.relations[fabricNumber]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return rel, nil
}

func (f *fakeStore) AddStock(_ context.Context, in domain.AddStockInput) (*domain.AddStockResult, error) {
	f.addCalls = append(f.addCalls, in)
	return &domain.AddStockResult{}, nil
}

func (f *fakeStore) ShipStyle(_ context.Context, _ int, _ domain.Size) ([]domain.FabricDeduction, error) {
	return f.deductions, nil
}

func (f *fakeStore) ListAccessoryAverages(_ context.Context, _ int) ([]domain.AccessoryAverage, error) {
	return f.accessoryAvgs, nil
}

func (f *fakeStore) GetAccessory(_ context.Context, number string) (*domain.Accessory, error) {
	acc, ok := f.accessories[number]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return acc, nil
}

func (f *fakeStore) AdjustAccessoryStock(_ context.Context, number string, delta int) (*domain.Accessory, error) {
	if f.adjustments == nil {
		f.adjustments = map[string]int{}
	}
	f.adjustments[number] += delta
	acc := *f.accessories[number]
	acc.StockUnit += delta
	return &acc, nil
}

func (f *fakeStore) GetShipBatch(_ context.Context, key string) (*domain.BatchSummary, error) {
	b, ok := f.batches[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

func (f *fakeStore) CreateShipBatch(_ context.Context, summary domain.BatchSummary) error {
	f.created = append(f.created, summary)
	return nil
}

func TestAddStockVendorRequiresUnitsWithoutRelation(t *testing.T) {
	fake := &fakeStore{}
	svc := New(fake, nil, nil, "secret")

	// Kilograms alone cannot land on the meter ledger without a ratio.
	_, err := svc.AddStock(context.Background(), domain.AddStockInput{FabricNumber: 7, Quantity: 10})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if len(fake.addCalls) != 0 {
		t.Fatalf("add reached the store despite invalid input")
	}

	// Both raw units present seeds a relation and goes through.
	if _, err := svc.AddStock(context.Background(), domain.AddStockInput{FabricNumber: 7, KgUnit: 10, MeterUnit: 33}); err != nil {
		t.Fatal(err)
	}
	if len(fake.addCalls) != 1 {
		t.Fatalf("add calls = %d, want 1", len(fake.addCalls))
	}
}

func TestAddStockWithRelationRequiresPositiveKg(t *testing.T) {
	fake := &fakeStore{relations: map[int]*domain.FabricRelation{
		9: {FabricNumber: 9, FabricInKG: 1, FabricInMeter: 3.2},
	}}
	svc := New(fake, nil, nil, "secret")

	_, err := svc.AddStock(context.Background(), domain.AddStockInput{FabricNumber: 9})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}

	if _, err := svc.AddStock(context.Background(), domain.AddStockInput{FabricNumber: 9, Quantity: 12.5}); err != nil {
		t.Fatal(err)
	}
	if len(fake.addCalls) != 1 {
		t.Fatalf("add calls = %d, want 1", len(fake.addCalls))
	}
}

func TestAddStockStore2RequiresRelation(t *testing.T) {
	fake := &fakeStore{}
	svc := New(fake, nil, nil, "secret")

	in := domain.AddStockInput{FabricNumber: 7, Source: domain.SourceStore2}
	if _, err := svc.AddStock(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if len(fake.addCalls) != 0 {
		t.Fatal("store2 transfer reached the store without a relation")
	}

	fake.relations = map[int]*domain.FabricRelation{
		7: {FabricNumber: 7, FabricInKG: 1, FabricInMeter: 3.2},
	}
	if _, err := svc.AddStock(context.Background(), in); err != nil {
		t.Fatal(err)
	}
	if len(fake.addCalls) != 1 || fake.addCalls[0].Source != domain.SourceStore2 {
		t.Fatalf("add calls = %+v, want one store2 add", fake.addCalls)
	}
}

func TestShipBulkReplayedKeyReturnsStoredSummary(t *testing.T) {
	key := uuid.NewString()
	stored := &domain.BatchSummary{BatchKey: key, Total: 2, Succeeded: 2}
	fake := &fakeStore{batches: map[string]*domain.BatchSummary{key: stored}}
	scanner := &fakeScanner{}
	svc := New(fake, scanner, nil, "secret")

	summary, err := svc.ShipBulk(context.Background(), key, []int64{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if summary.BatchKey != key || summary.Succeeded != 2 {
		t.Fatalf("summary = %+v, want the stored one", summary)
	}
	if scanner.calls != 0 {
		t.Fatalf("scanner saw %d lookups on a replayed key", scanner.calls)
	}
	if len(fake.created) != 0 {
		t.Fatal("a replayed key recorded a second batch")
	}
}

func TestShipBulkRecordsSummary(t *testing.T) {
	fake := &fakeStore{
		deductions: []domain.FabricDeduction{
			{FabricNo: 88, Average: 2, Before: 10, After: 8, Status: domain.StatusApplied},
		},
	}
	scanner := &fakeScanner{orders: map[int64]domain.ScannedOrder{
		11: {OrderID: 11, StyleNumber: 4512, Size: domain.SizeM},
		12: {OrderID: 12, StyleNumber: 4512, Size: domain.SizeL},
	}}
	svc := New(fake, scanner, nil, "secret")

	summary, err := svc.ShipBulk(context.Background(), "", []int64{11, 12, 13})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Total != 3 || summary.Succeeded != 2 || summary.Failed != 1 {
		t.Fatalf("summary = %+v, want total 3 succeeded 2 failed 1", summary)
	}
	if _, err := uuid.Parse(summary.BatchKey); err != nil {
		t.Fatalf("minted batch key %q is not a uuid", summary.BatchKey)
	}
	if len(fake.created) != 1 || fake.created[0].BatchKey != summary.BatchKey {
		t.Fatalf("recorded batches = %+v", fake.created)
	}
}

func TestShipStyleDeductsAccessories(t *testing.T) {
	newFake := func(stockUnit int) *fakeStore {
		return &fakeStore{
			deductions: []domain.FabricDeduction{{FabricNo: 88, Status: domain.StatusApplied}},
			accessoryAvgs: []domain.AccessoryAverage{
				{StyleNumber: 4512, AccessoryNo: "A-77", AverageXXSM: 2, AverageL5XL: 3},
			},
			accessories: map[string]*domain.Accessory{
				"A-77": {AccessoryNumber: "A-77", StockUnit: stockUnit},
			},
		}
	}

	fake := newFake(10)
	outcome := New(fake, nil, nil, "secret").ShipStyle(context.Background(), 4512, domain.SizeM)
	if outcome.Status != domain.StatusApplied {
		t.Fatalf("status = %s, want applied", outcome.Status)
	}
	if len(outcome.Accessories) != 1 {
		t.Fatalf("got %d accessory items, want 1", len(outcome.Accessories))
	}
	acc := outcome.Accessories[0]
	if acc.Before != 10 || acc.After != 8 || acc.Status != domain.StatusApplied {
		t.Fatalf("accessory item = %+v, want 10 -> 8 applied", acc)
	}
	if fake.adjustments["A-77"] != -2 {
		t.Fatalf("adjustment = %d, want -2", fake.adjustments["A-77"])
	}

	// The upper half of the size range reads the other band.
	fake = newFake(10)
	outcome = New(fake, nil, nil, "secret").ShipStyle(context.Background(), 4512, domain.SizeL)
	if fake.adjustments["A-77"] != -3 {
		t.Fatalf("adjustment = %d, want -3", fake.adjustments["A-77"])
	}
	if outcome.Accessories[0].After != 7 {
		t.Fatalf("after = %d, want 7", outcome.Accessories[0].After)
	}
}

func TestShipStyleAccessoryInsufficientStock(t *testing.T) {
	fake := &fakeStore{
		deductions: []domain.FabricDeduction{{FabricNo: 88, Status: domain.StatusApplied}},
		accessoryAvgs: []domain.AccessoryAverage{
			{StyleNumber: 4512, AccessoryNo: "A-77", AverageXXSM: 2, AverageL5XL: 3},
		},
		accessories: map[string]*domain.Accessory{
			"A-77": {AccessoryNumber: "A-77", StockUnit: 1},
		},
	}
	outcome := New(fake, nil, nil, "secret").ShipStyle(context.Background(), 4512, domain.SizeM)

	acc := outcome.Accessories[0]
	if acc.Status != domain.StatusFailed || acc.Reason == "" {
		t.Fatalf("accessory item = %+v, want failed with reason", acc)
	}
	if acc.After != 1 {
		t.Fatalf("after = %d, want untouched 1", acc.After)
	}
	if len(fake.adjustments) != 0 {
		t.Fatalf("adjustments = %v, want none", fake.adjustments)
	}
	// Fabric movement stands on its own.
	if outcome.Status != domain.StatusApplied {
		t.Fatalf("outcome status = %s, want applied", outcome.Status)
	}
}
