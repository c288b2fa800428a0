package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultLookupURL     = "https://world.openfoodfacts.org"
	defaultLookupTimeout = 5 * time.Second
	searchPath           = "/cgi/search.pl"
	maxLookupBody        = 4 << 20
)

// ErrLookupNotFound is the only failure the lookup reports to callers.
// The wrapped variants exist for logs and metrics.
var (
	ErrLookupNotFound    = errors.New("product not found from external API")
	ErrLookupNoMatch     = fmt.Errorf("%w: no match", ErrLookupNotFound)
	ErrLookupUnavailable = fmt.Errorf("%w: upstream unavailable", ErrLookupNotFound)
	ErrLookupBadResponse = fmt.Errorf("%w: bad upstream response", ErrLookupNotFound)
)

// External is a third-party product reduced to the fields the inventory keeps.
type External struct {
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Ingredients string `json:"ingredients"`
}

type ProductLookup interface {
	FetchByName(ctx context.Context, name string) (External, error)
}

// LookupClient queries the Open Food Facts product search.
type LookupClient struct {
	BaseURL   string
	UserAgent string
	Client    *http.Client
}

func NewLookupClient(baseURL string, timeout time.Duration) *LookupClient {
	if baseURL == "" {
		baseURL = defaultLookupURL
	}
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	return &LookupClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

type searchResponse struct {
	Count    json.Number     `json:"count"`
	Products []searchProduct `json:"products"`
}

type searchProduct struct {
	ProductName     *string `json:"product_name"`
	Brands          *string `json:"brands"`
	IngredientsText *string `json:"ingredients_text"`
}

// FetchByName returns the first search hit for name. Results are taken in
// the order the upstream returns them.
func (c *LookupClient) FetchByName(ctx context.Context, name string) (External, error) {
	q := url.Values{
		"search_terms":  {name},
		"search_simple": {"1"},
		"action":        {"process"},
		"json":          {"1"},
		"page":          {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+searchPath+"?"+q.Encode(), nil)
	if err != nil {
		return External{}, fmt.Errorf("%w: %v", ErrLookupBadResponse, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return External{}, fmt.Errorf("%w: %v", ErrLookupUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return External{}, fmt.Errorf("%w: status=%d", ErrLookupBadResponse, resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxLookupBody)).Decode(&sr); err != nil {
		return External{}, fmt.Errorf("%w: %v", ErrLookupBadResponse, err)
	}

	count, err := parseCount(sr.Count)
	if err != nil {
		return External{}, fmt.Errorf("%w: count: %v", ErrLookupBadResponse, err)
	}
	if count <= 0 {
		return External{}, ErrLookupNoMatch
	}
	if len(sr.Products) == 0 {
		return External{}, fmt.Errorf("%w: count=%d but no products", ErrLookupBadResponse, count)
	}

	return sr.Products[0].normalize(), nil
}

func (p searchProduct) normalize() External {
	return External{
		Name:        textOrUnknown(p.ProductName),
		Brand:       textOrUnknown(p.Brands),
		Ingredients: textOrUnknown(p.IngredientsText),
	}
}

func parseCount(n json.Number) (int64, error) {
	if n == "" {
		return 0, nil
	}
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

func textOrUnknown(s *string) string {
	if s == nil {
		return defaultText
	}
	return *s
}
