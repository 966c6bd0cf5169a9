package catalogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cart_service/internal/core/domain"
)

// Client reads products and stock from the storefront backend:
//
//	GET {base}/products/{id}
//	GET {base}/stock/{id}
type Client struct {
	base *url.URL
	http *http.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse catalog url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("catalog url must be http(s), got %q", baseURL)
	}
	return &Client{
		base: u,
		http: &http.Client{Timeout: timeout},
	}, nil
}

func (c *Client) GetProduct(ctx context.Context, productID int) (domain.Product, error) {
	var p domain.Product
	if err := c.getJSON(ctx, "products", productID, &p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (c *Client) GetStock(ctx context.Context, productID int) (domain.Stock, error) {
	var s domain.Stock
	if err := c.getJSON(ctx, "stock", productID, &s); err != nil {
		return domain.Stock{}, err
	}
	if s.ID != productID {
		return domain.Stock{}, fmt.Errorf("stock %d: backend returned id=%d", productID, s.ID)
	}
	if s.Amount < 0 {
		return domain.Stock{}, fmt.Errorf("stock %d: negative amount %d", productID, s.Amount)
	}
	return s, nil
}

func (c *Client) getJSON(ctx context.Context, resource string, id int, dst any) error {
	u := c.base.JoinPath(resource, strconv.Itoa(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s/%d: %w", resource, id, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s/%d: %w", resource, id, domain.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("get %s/%d: unexpected status %d", resource, id, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(dst); err != nil {
		return fmt.Errorf("decode %s/%d: %w", resource, id, err)
	}
	return nil
}
