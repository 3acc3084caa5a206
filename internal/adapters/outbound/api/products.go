package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/abdidvp/invdash/internal/domain"
)

// Products implements domain.ProductGateway on top of Client.
type Products struct {
	client *Client
}

func NewProducts(c *Client) *Products { return &Products{client: c} }

// List fetches every product. A response that is not a JSON array yields an
// empty list.
func (p *Products) List(ctx context.Context) ([]domain.Product, error) {
	var raw json.RawMessage
	if err := p.client.Do(ctx, http.MethodGet, "/data", nil, &raw); err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		p.client.logger.Warn().Msg("product list response is not an array, treating as empty")
		return []domain.Product{}, nil
	}

	products := []domain.Product{}
	if err := json.Unmarshal(trimmed, &products); err != nil {
		return nil, &domain.APIError{Kind: domain.APIErrorDecode, Method: http.MethodGet, Path: "/data", Status: http.StatusOK, Err: err}
	}
	for i := range products {
		if pr := products[i].Price; pr != nil && !domain.PriceInRange(*pr) {
			p.client.logger.Warn().Str("id", products[i].ID.String()).Int32("exponent", pr.Exponent()).Msg("dropping out-of-range price")
			products[i].Price = nil
		}
	}
	return products, nil
}

func (p *Products) Create(ctx context.Context, sub domain.Submission) error {
	sub.ID = domain.ProductID{}
	return p.client.Do(ctx, http.MethodPost, "/add", sub, nil)
}

func (p *Products) Update(ctx context.Context, sub domain.Submission) error {
	return p.client.Do(ctx, http.MethodPut, "/edit", sub, nil)
}

func (p *Products) Delete(ctx context.Context, id domain.ProductID) error {
	body := struct {
		ID domain.ProductID `json:"id"`
	}{ID: id}
	return p.client.Do(ctx, http.MethodDelete, "/delete", body, nil)
}
