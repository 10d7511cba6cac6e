package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"rawstock/internal/csvio"
	"rawstock/internal/domain"
	"rawstock/internal/service"
	"rawstock/internal/stock"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (h *Handler) ListStock(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit, err := parseOptionalInt(query.Get("limit"), 200)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := parseOptionalInt(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var threshold *float64
	if lowStockRaw := strings.TrimSpace(query.Get("low_stock")); lowStockRaw != "" {
		lowStock, err := strconv.ParseBool(lowStockRaw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "low_stock must be true or false")
			return
		}
		if lowStock {
			threshold, err = parseOptionalFloat(query.Get("threshold"))
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			if threshold == nil {
				value := stock.LowStockThreshold
				threshold = &value
			}
		}
	}

	items, err := h.svc.ListStock(r.Context(), query.Get("search"), limit, offset, threshold)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *Handler) GetStock(w http.ResponseWriter, r *http.Request) {
	number, err := parseFabricNumber(chi.URLParam(r, "fabricNumber"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	item, err := h.svc.GetStock(r.Context(), number)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) CreateStock(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Items []domain.StockImportRow `json:"items"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.svc.ImportStock(r.Context(), payload.Items)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) ImportStock(w http.ResponseWriter, r *http.Request) {
	file, header, err := formFile(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer file.Close()

	rows, err := csvio.ParseStockRows(file, header.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.svc.ImportStock(r.Context(), rows)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"file_name": header.Filename,
		"total":     result.Total,
		"inserted":  result.Inserted,
		"updated":   result.Updated,
	})
}

func (h *Handler) AddStock(w http.ResponseWriter, r *http.Request) {
	var input domain.AddStockInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.svc.AddStock(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FabricNumber int     `json:"fabric_number"`
		Quantity     float64 `json:"quantity"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	item, err := h.svc.UpdateStock(r.Context(), payload.FabricNumber, payload.Quantity)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) LowStock(w http.ResponseWriter, r *http.Request) {
	threshold, err := parseOptionalFloat(r.URL.Query().Get("threshold"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.svc.LowStock(r.Context(), threshold)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": rows, "count": len(rows)})
}

func (h *Handler) ExportLowStock(w http.ResponseWriter, r *http.Request) {
	threshold, err := parseOptionalFloat(r.URL.Query().Get("threshold"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.svc.LowStock(r.Context(), threshold)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="low-stock.csv"`)
	if err := csvio.WriteLowStockReport(w, rows); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) ListStore2Stock(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListStore2Stock(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *Handler) ShipOrder(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		OrderID int64 `json:"order_id"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.OrderID <= 0 {
		writeError(w, http.StatusBadRequest, "order_id is required")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.ShipOrder(r.Context(), payload.OrderID))
}

func (h *Handler) ShipStyle(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		StyleNumber int    `json:"style_number"`
		Size        string `json:"size"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.StyleNumber <= 0 {
		writeError(w, http.StatusBadRequest, "style_number is required")
		return
	}
	writeJSON(w, http.StatusOK, h.svc.ShipStyle(r.Context(), payload.StyleNumber, domain.Size(payload.Size)))
}

func (h *Handler) ShipBulk(w http.ResponseWriter, r *http.Request) {
	batchKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))

	var orderIDs []int64
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, header, err := formFile(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		defer file.Close()
		orderIDs, err = csvio.ParseOrderIDs(file, header.Filename)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	} else {
		var payload struct {
			OrderIDs []int64 `json:"order_ids"`
		}
		if err := decodeJSON(r, &payload); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		orderIDs = payload.OrderIDs
	}

	summary, err := h.svc.ShipBulk(r.Context(), batchKey, orderIDs)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) GetShipBatch(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(chi.URLParam(r, "key"))
	if key == "" {
		writeError(w, http.StatusBadRequest, "batch key is required")
		return
	}
	summary, err := h.svc.GetShipBatch(r.Context(), key)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
