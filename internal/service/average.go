package service

import (
	"context"
	"errors"
	"fmt"

	"rawstock/internal/csvio"
	"rawstock/internal/domain"
	"rawstock/internal/repository"
)

// ImportAverages joins slot-addressed average rows to the style's fabric and
// accessory numbers and persists them keyed by number. A row whose style has
// no registered slots is an error; averages must never attach to the wrong
// fabric.
func (s *Service) ImportAverages(ctx context.Context, rows []csvio.AverageRow) (domain.UpsertResult, error) {
	if len(rows) == 0 {
		return domain.UpsertResult{}, invalidf("import file has no data rows")
	}

	var fabrics []domain.FabricAverage
	var accessories []domain.AccessoryAverage
	for _, row := range rows {
		detail, err := s.repo.GetStyleDetail(ctx, row.StyleNumber)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return domain.UpsertResult{}, invalidf("style %d is not registered; upload style details first", row.StyleNumber)
			}
			return domain.UpsertResult{}, err
		}

		fas, aas, err := JoinAverageRow(row, *detail)
		if err != nil {
			return domain.UpsertResult{}, err
		}
		fabrics = append(fabrics, fas...)
		accessories = append(accessories, aas...)
	}

	return s.repo.UpsertAverages(ctx, fabrics, accessories)
}

// UpsertAverageProfiles stores already-keyed average rows, as submitted over
// the JSON API.
func (s *Service) UpsertAverageProfiles(ctx context.Context, fabrics []domain.FabricAverage, accessories []domain.AccessoryAverage) (domain.UpsertResult, error) {
	if len(fabrics)+len(accessories) == 0 {
		return domain.UpsertResult{}, invalidf("no average rows submitted")
	}
	for _, fa := range fabrics {
		if fa.StyleNumber <= 0 || fa.FabricNo <= 0 {
			return domain.UpsertResult{}, invalidf("fabric average needs style_number and fabric_no")
		}
	}
	for _, aa := range accessories {
		if aa.StyleNumber <= 0 || aa.AccessoryNo == "" {
			return domain.UpsertResult{}, invalidf("accessory average needs style_number and accessory_no")
		}
	}
	return s.repo.UpsertAverages(ctx, fabrics, accessories)
}

// JoinAverageRow resolves each slot of an average row against the style's
// slot registrations.
func JoinAverageRow(row csvio.AverageRow, detail domain.StyleDetail) ([]domain.FabricAverage, []domain.AccessoryAverage, error) {
	fabricBySlot := make(map[int]domain.StyleFabric, len(detail.Fabrics))
	for _, f := range detail.Fabrics {
		fabricBySlot[f.Slot] = f
	}
	accessoryBySlot := make(map[int]domain.StyleAccessory, len(detail.Accessories))
	for _, a := range detail.Accessories {
		accessoryBySlot[a.Slot] = a
	}

	var fabrics []domain.FabricAverage
	for _, sa := range row.Fabrics {
		f, ok := fabricBySlot[sa.Slot]
		if !ok {
			return nil, nil, fmt.Errorf("style %d has no fabric in slot %d", row.StyleNumber, sa.Slot)
		}
		fabrics = append(fabrics, domain.FabricAverage{
			StyleNumber:   row.StyleNumber,
			FabricNo:      f.FabricNo,
			AverageXXSXS:  sa.AverageXXSXS,
			AverageSM:     sa.AverageSM,
			AverageLXL:    sa.AverageLXL,
			Average2XL3XL: sa.Average2XL3XL,
			Average4XL5XL: sa.Average4XL5XL,
			Width:         sa.Width,
		})
	}

	var accessories []domain.AccessoryAverage
	for _, sa := range row.Accessories {
		a, ok := accessoryBySlot[sa.Slot]
		if !ok {
			return nil, nil, fmt.Errorf("style %d has no accessory in slot %d", row.StyleNumber, sa.Slot)
		}
		accessories = append(accessories, domain.AccessoryAverage{
			StyleNumber: row.StyleNumber,
			AccessoryNo: a.AccessoryNo,
			AverageXXSM: sa.AverageXXSM,
			AverageL5XL: sa.AverageL5XL,
		})
	}

	return fabrics, accessories, nil
}
