// Package scan talks to the warehouse scan service that resolves an order id
// to the garment that was packed for it, and to the product catalogue used to
// enrich style lookups.
package scan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"rawstock/internal/domain"
	"rawstock/internal/stock"
)

const defaultTimeout = 5 * time.Second

// Client wraps the external scan and product services.
type Client struct {
	httpClient     *http.Client
	scanBaseURL    string
	productBaseURL string
	userID         int64
	userLocationID int64
}

func NewClient(scanBaseURL, productBaseURL string, userID, userLocationID int64) *Client {
	return &Client{
		httpClient:     &http.Client{Timeout: defaultTimeout},
		scanBaseURL:    scanBaseURL,
		productBaseURL: productBaseURL,
		userID:         userID,
		userLocationID: userLocationID,
	}
}

type scanRequest struct {
	UserID         int64 `json:"user_id"`
	OrderID        int64 `json:"order_id"`
	UserLocationID int64 `json:"user_location_id"`
}

type scanResponse struct {
	Data struct {
		OrderID     int64  `json:"order_id"`
		StyleNumber int    `json:"style_number"`
		Size        string `json:"size"`
	} `json:"data"`
}

// LookupOrder asks the scan service what was packed for the order. The size
// label is normalized before it reaches any band resolution.
func (c *Client) LookupOrder(ctx context.Context, orderID int64) (domain.ScannedOrder, error) {
	payload, err := json.Marshal(scanRequest{
		UserID:         c.userID,
		OrderID:        orderID,
		UserLocationID: c.userLocationID,
	})
	if err != nil {
		return domain.ScannedOrder{}, fmt.Errorf("encode scan request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.scanBaseURL+"/scan", bytes.NewReader(payload))
	if err != nil {
		return domain.ScannedOrder{}, fmt.Errorf("build scan request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ScannedOrder{}, fmt.Errorf("scan service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ScannedOrder{}, fmt.Errorf("scan service returned status %d for order %d", resp.StatusCode, orderID)
	}

	var decoded scanResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.ScannedOrder{}, fmt.Errorf("decode scan response: %w", err)
	}
	if decoded.Data.StyleNumber == 0 {
		return domain.ScannedOrder{}, fmt.Errorf("scan service has no garment for order %d", orderID)
	}

	return domain.ScannedOrder{
		OrderID:     decoded.Data.OrderID,
		StyleNumber: decoded.Data.StyleNumber,
		Size:        stock.NormalizeSize(decoded.Data.Size),
	}, nil
}

type productResponse []struct {
	StyleID int64 `json:"style_id"`
}

// LookupStyleID resolves a style number to the catalogue's style id. Lookup
// failures are soft; callers treat a zero id as "not enriched".
func (c *Client) LookupStyleID(ctx context.Context, styleNumber int) (int64, error) {
	endpoint := c.productBaseURL + "/api/product?style_code=" + url.QueryEscape(strconv.Itoa(styleNumber))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("build product request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("product service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("product service returned status %d", resp.StatusCode)
	}

	var decoded productResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("decode product response: %w", err)
	}
	if len(decoded) == 0 {
		return 0, nil
	}
	return decoded[0].StyleID, nil
}
