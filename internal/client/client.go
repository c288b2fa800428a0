package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultBaseURL = "http://127.0.0.1:5000"

var ErrUnavailable = errors.New("inventory api unavailable")

// Product mirrors the record returned by the inventory service.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Barcode     *string `json:"barcode"`
	Ingredients string  `json:"ingredients"`
}

// Response is a raw API reply. Callers print Body as-is.
type Response struct {
	Status int
	Body   []byte
}

func (r Response) OK() bool { return r.Status >= 200 && r.Status < 300 }

type Client struct {
	BaseURL string
	Client  *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) List(ctx context.Context) ([]Product, Response, error) {
	resp, err := c.do(ctx, http.MethodGet, "/inventory", nil)
	if err != nil {
		return nil, resp, err
	}
	if !resp.OK() {
		return nil, resp, nil
	}

	var out []Product
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, resp, fmt.Errorf("decode list: %w", err)
	}
	return out, resp, nil
}

func (c *Client) Get(ctx context.Context, id int) (Response, error) {
	return c.do(ctx, http.MethodGet, itemPath(id), nil)
}

// Add creates a record. extra carries optional fields such as brand.
func (c *Client) Add(ctx context.Context, name string, quantity int, price float64, extra map[string]any) (Response, error) {
	body := map[string]any{
		"name":     name,
		"quantity": quantity,
		"price":    price,
	}
	for k, v := range extra {
		body[k] = v
	}
	return c.do(ctx, http.MethodPost, "/inventory", body)
}

// Update sends a partial update. An empty patch is still sent.
func (c *Client) Update(ctx context.Context, id int, patch map[string]any) (Response, error) {
	if patch == nil {
		patch = map[string]any{}
	}
	return c.do(ctx, http.MethodPatch, itemPath(id), patch)
}

func (c *Client) Delete(ctx context.Context, id int) (Response, error) {
	return c.do(ctx, http.MethodDelete, itemPath(id), nil)
}

func (c *Client) Fetch(ctx context.Context, name string) (Response, error) {
	return c.do(ctx, http.MethodGet, "/inventory/fetch/"+url.PathEscape(name), nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (Response, error) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return Response{}, err
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, r)
	if err != nil {
		return Response{}, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.Client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{Status: resp.StatusCode}, fmt.Errorf("read body: %w", err)
	}
	return Response{Status: resp.StatusCode, Body: bytes.TrimSpace(raw)}, nil
}

func itemPath(id int) string {
	return "/inventory/" + strconv.Itoa(id)
}
