package client

import (
	"context"
	"net/http"
	"net/url"

	"wedding-liaison/internal/domain"
)

func (c *Client) ListVendors(ctx context.Context, filter domain.VendorFilter) ([]domain.Vendor, error) {
	params := url.Values{}
	if filter.Category != "" {
		params.Set("category", filter.Category)
	}
	if filter.Location != "" {
		params.Set("location", filter.Location)
	}
	if filter.Search != "" {
		params.Set("search", filter.Search)
	}
	if filter.SortBy != "" {
		params.Set("sortBy", filter.SortBy)
	}

	path := "/vendors"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var vendors []domain.Vendor
	if err := c.do(ctx, http.MethodGet, path, nil, &vendors); err != nil {
		return nil, err
	}
	return vendors, nil
}

func (c *Client) ProcessPayment(ctx context.Context, req domain.PaymentRequest) (*domain.Payment, error) {
	var payment domain.Payment
	if err := c.do(ctx, http.MethodPost, "/payments", req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
