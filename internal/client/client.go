// Package client is a typed HTTP client for the catalogue API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"roots-catalog/internal/config"
	"roots-catalog/internal/model"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

// Error returns the server's message, which is what the admin shows the user.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// HTTPClient talks to the catalogue REST API. Every request carries APIKey in
// the X-API-Key header; it satisfies admin.API.
type HTTPClient struct {
	Base   string
	APIKey string
	HTTP   *http.Client
}

// New creates a client from cfg.
func New(cfg *config.ClientConfig) *HTTPClient {
	return &HTTPClient{
		Base:   strings.TrimRight(cfg.BaseURL, "/"),
		APIKey: cfg.APIKey,
		HTTP:   &http.Client{Timeout: cfg.Timeout},
	}
}

// ListProducts fetches one page of products whose name contains keyword.
func (c *HTTPClient) ListProducts(ctx context.Context, keyword string, page int) (*model.ProductPage, error) {
	q := url.Values{}
	if keyword != "" {
		q.Set("keyword", keyword)
	}
	if page > 0 {
		q.Set("pageNumber", strconv.Itoa(page))
	}

	path := "/api/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out model.ProductPage
	if err := c.do(ctx, http.MethodGet, path, nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProduct fetches the details of one product.
func (c *HTTPClient) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	var out model.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct asks the server to create a sample product.
func (c *HTTPClient) CreateProduct(ctx context.Context) (*model.Product, error) {
	var out model.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct replaces every editable field of a product.
func (c *HTTPClient) UpdateProduct(ctx context.Context, id string, update model.ProductUpdate) (*model.Product, error) {
	b, err := json.Marshal(update)
	if err != nil {
		return nil, err
	}

	var out model.Product
	if err := c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), bytes.NewReader(b), "application/json", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct removes a product and returns the server's confirmation message.
func (c *HTTPClient) DeleteProduct(ctx context.Context, id string) (string, error) {
	var out model.MessageResponse
	if err := c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, "", &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// UploadImage sends an image as the multipart field "image" and returns the
// reference to store in a product's image field.
func (c *HTTPClient) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	part, err := mw.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	var ref string
	if err := c.do(ctx, http.MethodPost, "/api/upload", body, mw.FormDataContentType(), &ref); err != nil {
		return "", err
	}
	return ref, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.APIKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body model.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil {
		apiErr.Code = body.Error
		apiErr.Message = body.Message
	}

	return apiErr
}
