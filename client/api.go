package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// API is the server surface the controller drives.
type API interface {
	ListProducts(ctx context.Context, params ListParams) (*ProductPage, error)
	ListCategories(ctx context.Context, page int) (*CategoryPage, error)
	GetProduct(ctx context.Context, id uint) (*Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*ProductResult, error)
	UpdateProduct(ctx context.Context, id uint, input ProductInput) (*ProductResult, error)
	DeleteProduct(ctx context.Context, id uint) (string, error)
	GetCategory(ctx context.Context, id uint) (*Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*CategoryResult, error)
	UpdateCategory(ctx context.Context, id uint, input CategoryInput) (*CategoryResult, error)
	DeleteCategory(ctx context.Context, id uint) (string, error)
}

type ListParams struct {
	Category  string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	q.Set("category", p.Category)
	q.Set("search", p.Search)
	q.Set("sort_by", p.SortBy)
	q.Set("sort_order", p.SortOrder)
	q.Set("page", strconv.Itoa(p.Page))
	return q
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *APIError) Error() string {
	return e.Message
}

type HTTPClient struct {
	baseURL        string
	httpClient     *http.Client
	methodOverride bool
	log            *logrus.Logger
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.httpClient = hc
	}
}

// WithMethodOverride sends PUT and DELETE as POST with an override header,
// for servers behind proxies that only pass GET and POST.
func WithMethodOverride() Option {
	return func(c *HTTPClient) {
		c.methodOverride = true
	}
}

func NewHTTPClient(baseURL string, logger *logrus.Logger, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) ListProducts(ctx context.Context, params ListParams) (*ProductPage, error) {
	var page ProductPage
	if err := c.do(ctx, http.MethodGet, "/products/list", params.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *HTTPClient) ListCategories(ctx context.Context, page int) (*CategoryPage, error) {
	var result CategoryPage
	q := url.Values{"page": {strconv.Itoa(page)}}
	if err := c.do(ctx, http.MethodGet, "/categories/list", q, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) GetProduct(ctx context.Context, id uint) (*Product, error) {
	var out struct {
		Product Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d/edit", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

func (c *HTTPClient) CreateProduct(ctx context.Context, input ProductInput) (*ProductResult, error) {
	var out ProductResult
	if err := c.do(ctx, http.MethodPost, "/products", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateProduct(ctx context.Context, id uint, input ProductInput) (*ProductResult, error) {
	var out ProductResult
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteProduct(ctx context.Context, id uint) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *HTTPClient) GetCategory(ctx context.Context, id uint) (*Category, error) {
	var out struct {
		Category Category `json:"category"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/categories/%d/edit", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Category, nil
}

func (c *HTTPClient) CreateCategory(ctx context.Context, input CategoryInput) (*CategoryResult, error) {
	var out CategoryResult
	if err := c.do(ctx, http.MethodPost, "/categories", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateCategory(ctx context.Context, id uint, input CategoryInput) (*CategoryResult, error) {
	var out CategoryResult
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteCategory(ctx context.Context, id uint) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	sendMethod := method
	if c.methodOverride && (method == http.MethodPut || method == http.MethodPatch || method == http.MethodDelete) {
		sendMethod = http.MethodPost
	}

	req, err := http.NewRequestWithContext(ctx, sendMethod, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sendMethod != method {
		req.Header.Set("X-HTTP-Method-Override", method)
	}

	c.log.Debugf("Sending %s %s", method, target)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Errorf("Failed to call %s %s: %v", method, path, err)
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Message string              `json:"message"`
			Errors  map[string][]string `json:"errors"`
		}
		if json.Unmarshal(raw, &payload) == nil {
			apiErr.Message = payload.Message
			apiErr.Fields = payload.Errors
		}
		if apiErr.Message == "" {
			apiErr.Message = "An error occurred"
		}
		c.log.Warnf("%s %s returned status %d: %s", method, path, resp.StatusCode, apiErr.Message)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
