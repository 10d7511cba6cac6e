package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rawstock/internal/domain"
	"rawstock/internal/repository"
	"rawstock/internal/stock"
)

// ErrInvalidInput marks request validation failures so handlers can map them
// to 400 instead of 500.
var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// OrderLookup resolves an order id to the garment packed for it. Implemented
// by the scan client; faked in tests.
type OrderLookup interface {
	LookupOrder(ctx context.Context, orderID int64) (domain.ScannedOrder, error)
}

// CatalogLookup resolves a style number to the product catalogue's style id.
// Lookups are best-effort; a nil catalog disables enrichment.
type CatalogLookup interface {
	LookupStyleID(ctx context.Context, styleNumber int) (int64, error)
}

// Store is the persistence surface the service drives. *repository.Repository
// is the production implementation; tests substitute fakes.
type Store interface {
	ListFabricStock(ctx context.Context, filter repository.StockListFilter) ([]domain.FabricStock, error)
	GetFabricStock(ctx context.Context, fabricNumber int) (*domain.FabricStock, error)
	BulkUpsertStock(ctx context.Context, rows []domain.StockImportRow) (domain.StockImportResult, error)
	AddStock(ctx context.Context, in domain.AddStockInput) (*domain.AddStockResult, error)
	UpdateStockQuantity(ctx context.Context, fabricNumber int, delta float64) (*domain.FabricStock, error)
	LowStock(ctx context.Context, threshold float64) ([]domain.LowStockRow, error)
	ListStore2Stock(ctx context.Context, search string) ([]domain.Store2Stock, error)
	ListPurchaseHistory(ctx context.Context, fabricNumber, limit int) ([]domain.PurchaseRecord, error)

	ListRelations(ctx context.Context, filter repository.RelationListFilter) ([]domain.FabricRelation, error)
	GetRelation(ctx context.Context, fabricNumber int) (*domain.FabricRelation, error)
	BulkUpsertRelations(ctx context.Context, rows []domain.RelationImportRow) (domain.UpsertResult, error)

	ListStyleDetails(ctx context.Context, search string, limit, offset int) ([]domain.StyleDetail, error)
	GetStyleDetail(ctx context.Context, styleNumber int) (*domain.StyleDetail, error)
	BulkUpsertStyles(ctx context.Context, rows []domain.StyleImportRow) (domain.UpsertResult, error)
	UpsertAverages(ctx context.Context, fabrics []domain.FabricAverage, accessories []domain.AccessoryAverage) (domain.UpsertResult, error)
	ListAccessoryAverages(ctx context.Context, styleNumber int) ([]domain.AccessoryAverage, error)

	ListAccessories(ctx context.Context, search string, limit, offset int) ([]domain.Accessory, error)
	GetAccessory(ctx context.Context, accessoryNumber string) (*domain.Accessory, error)
	AdjustAccessoryStock(ctx context.Context, accessoryNumber string, delta int) (*domain.Accessory, error)
	BulkUpsertAccessories(ctx context.Context, rows []domain.AccessoryImportRow) (domain.UpsertResult, error)

	ShipStyle(ctx context.Context, styleNumber int, size domain.Size) ([]domain.FabricDeduction, error)
	CreateShipBatch(ctx context.Context, summary domain.BatchSummary) error
	GetShipBatch(ctx context.Context, batchKey string) (*domain.BatchSummary, error)

	CreateUser(ctx context.Context, username, email, passwordHash, role string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, string, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUserRole(ctx context.Context, id int64, role string) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

type Service struct {
	repo      Store
	scanner   OrderLookup
	catalog   CatalogLookup
	jwtSecret string
}

func New(repo Store, scanner OrderLookup, catalog CatalogLookup, jwtSecret string) *Service {
	return &Service{repo: repo, scanner: scanner, catalog: catalog, jwtSecret: jwtSecret}
}

func (s *Service) ListStock(ctx context.Context, search string, limit, offset int, threshold *float64) ([]domain.FabricStock, error) {
	return s.repo.ListFabricStock(ctx, repository.StockListFilter{
		Search:    search,
		Limit:     limit,
		Offset:    offset,
		Threshold: threshold,
	})
}

func (s *Service) GetStock(ctx context.Context, fabricNumber int) (*domain.FabricStock, error) {
	return s.repo.GetFabricStock(ctx, fabricNumber)
}

func (s *Service) ImportStock(ctx context.Context, rows []domain.StockImportRow) (domain.StockImportResult, error) {
	if len(rows) == 0 {
		return domain.StockImportResult{}, invalidf("import file has no data rows")
	}
	return s.repo.BulkUpsertStock(ctx, rows)
}

// AddStock validates an add against the fabric's relation before handing it
// to the repository. Store2 balances are kilograms, so a transfer needs a
// usable relation to land on the meter ledger; a vendor add without a
// relation needs both raw units so one can be seeded.
func (s *Service) AddStock(ctx context.Context, in domain.AddStockInput) (*domain.AddStockResult, error) {
	if in.FabricNumber <= 0 {
		return nil, invalidf("fabric_number is required")
	}

	rel, err := s.repo.GetRelation(ctx, in.FabricNumber)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	usable := rel != nil && rel.Usable()

	switch in.Source {
	case domain.SourceStore2:
		if !usable {
			return nil, invalidf("fabric %d needs a meter/kg relation before a store2 transfer", in.FabricNumber)
		}
	case domain.SourceVendor, "":
		in.Source = domain.SourceVendor
		if usable {
			if in.Quantity <= 0 {
				return nil, invalidf("quantity (kg) must be positive")
			}
		} else if in.KgUnit <= 0 || in.MeterUnit <= 0 {
			return nil, invalidf("fabric %d has no relation; kg_unit and meter_unit must both be positive", in.FabricNumber)
		}
	default:
		return nil, invalidf("unknown fabric_source %q", in.Source)
	}
	return s.repo.AddStock(ctx, in)
}

func (s *Service) UpdateStock(ctx context.Context, fabricNumber int, delta float64) (*domain.FabricStock, error) {
	if fabricNumber <= 0 {
		return nil, invalidf("fabric_number is required")
	}
	if delta == 0 {
		return nil, invalidf("quantity must be non-zero")
	}
	return s.repo.UpdateStockQuantity(ctx, fabricNumber, delta)
}

func (s *Service) LowStock(ctx context.Context, threshold *float64) ([]domain.LowStockRow, error) {
	limit := stock.LowStockThreshold
	if threshold != nil && *threshold > 0 {
		limit = *threshold
	}
	return s.repo.LowStock(ctx, limit)
}

func (s *Service) ListStore2Stock(ctx context.Context, search string) ([]domain.Store2Stock, error) {
	return s.repo.ListStore2Stock(ctx, search)
}

func (s *Service) PurchaseHistory(ctx context.Context, fabricNumber, limit int) ([]domain.PurchaseRecord, error) {
	return s.repo.ListPurchaseHistory(ctx, fabricNumber, limit)
}

func (s *Service) ListRelations(ctx context.Context, search string, usable *bool, limit, offset int) ([]domain.FabricRelation, error) {
	return s.repo.ListRelations(ctx, repository.RelationListFilter{
		Search: search,
		Usable: usable,
		Limit:  limit,
		Offset: offset,
	})
}

func (s *Service) GetRelation(ctx context.Context, fabricNumber int) (*domain.FabricRelation, error) {
	return s.repo.GetRelation(ctx, fabricNumber)
}

func (s *Service) ImportRelations(ctx context.Context, rows []domain.RelationImportRow) (domain.UpsertResult, error) {
	if len(rows) == 0 {
		return domain.UpsertResult{}, invalidf("import file has no data rows")
	}
	for _, row := range rows {
		if row.FabricInMeter <= 0 {
			return domain.UpsertResult{}, invalidf("fabric %d: fabric_in_meter must be positive", row.FabricNumber)
		}
	}
	return s.repo.BulkUpsertRelations(ctx, rows)
}

func (s *Service) ListStyleDetails(ctx context.Context, search string, limit, offset int) ([]domain.StyleDetail, error) {
	return s.repo.ListStyleDetails(ctx, search, limit, offset)
}

func (s *Service) ImportStyles(ctx context.Context, rows []domain.StyleImportRow) (domain.UpsertResult, error) {
	if len(rows) == 0 {
		return domain.UpsertResult{}, invalidf("import file has no data rows")
	}
	return s.repo.BulkUpsertStyles(ctx, rows)
}

func (s *Service) ListAccessories(ctx context.Context, search string, limit, offset int) ([]domain.Accessory, error) {
	return s.repo.ListAccessories(ctx, search, limit, offset)
}

func (s *Service) AdjustAccessory(ctx context.Context, accessoryNumber string, delta int) (*domain.Accessory, error) {
	accessoryNumber = strings.TrimSpace(accessoryNumber)
	if accessoryNumber == "" {
		return nil, invalidf("accessory number is required")
	}
	if delta == 0 {
		return nil, invalidf("quantity must be non-zero")
	}
	return s.repo.AdjustAccessoryStock(ctx, accessoryNumber, delta)
}

func (s *Service) ImportAccessories(ctx context.Context, rows []domain.AccessoryImportRow) (domain.UpsertResult, error) {
	if len(rows) == 0 {
		return domain.UpsertResult{}, invalidf("import file has no data rows")
	}
	return s.repo.BulkUpsertAccessories(ctx, rows)
}
