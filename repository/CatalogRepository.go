package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"shopHub/entities"
	"shopHub/models"

	logx "shopHub/pkg/logger"
)

type CatalogRepository interface {
	FetchProducts(ctx context.Context) (prods []entities.Product, err error)
}

type HTTPCatalogRepo struct {
	baseURL string
	client  *http.Client
}

func NewHTTPCatalogRepository(baseURL string, timeout time.Duration) (CatalogRepository, error) {
	if baseURL == "" {
		return nil, errors.New("baseURL must be non-empty")
	}
	return &HTTPCatalogRepo{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPCatalogRepo) FetchProducts(ctx context.Context) (prods []entities.Product, err error) {
	req, e := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if e != nil {
		logx.Error().Msgf("FetchProducts: %v", e)
		err = models.ErrFetch
		return
	}
	resp, e := c.client.Do(req)
	if e != nil {
		logx.Error().Msgf("FetchProducts: %v", e)
		err = models.ErrFetch
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logx.Error().Msgf("FetchProducts: unexpected status %d", resp.StatusCode)
		err = models.ErrFetch
		return
	}
	err = json.NewDecoder(resp.Body).Decode(&prods)
	if err != nil {
		logx.Error().Msgf("FetchProducts: decode: %v", err)
		prods = nil
		err = models.ErrFetch
	}
	return
}
