package inventory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newSearchTS(t *testing.T, status int, body string) (*httptest.Server, *http.Request) {
	t.Helper()

	var last http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		last = *r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts, &last
}

func TestLookupClient_FirstMatch(t *testing.T) {
	ts, last := newSearchTS(t, http.StatusOK, `{
		"count": 2,
		"products": [
			{"product_name": "Almond Milk", "brands": "Alpro", "ingredients_text": "water, almonds"},
			{"product_name": "Second", "brands": "Other"}
		]
	}`)

	c := NewLookupClient(ts.URL+"/", time.Second)
	c.UserAgent = "StockRoom-test"

	got, err := c.FetchByName(context.Background(), "almond milk")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	want := External{Name: "Almond Milk", Brand: "Alpro", Ingredients: "water, almonds"}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}

	if last.URL.Path != "/cgi/search.pl" {
		t.Fatalf("path=%q", last.URL.Path)
	}
	q := last.URL.Query()
	for k, v := range map[string]string{
		"search_terms":  "almond milk",
		"search_simple": "1",
		"action":        "process",
		"json":          "1",
		"page":          "1",
	} {
		if q.Get(k) != v {
			t.Fatalf("query %s=%q want %q", k, q.Get(k), v)
		}
	}
	if ua := last.Header.Get("User-Agent"); ua != "StockRoom-test" {
		t.Fatalf("user-agent=%q", ua)
	}
}

func TestLookupClient_DefaultsMissingText(t *testing.T) {
	ts, _ := newSearchTS(t, http.StatusOK, `{"count": "1", "products": [{"brands": "", "ingredients_text": null}]}`)

	got, err := NewLookupClient(ts.URL, time.Second).FetchByName(context.Background(), "plain")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	want := External{Name: "Unknown", Brand: "", Ingredients: "Unknown"}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestLookupClient_KeepsPresentText(t *testing.T) {
	ts, _ := newSearchTS(t, http.StatusOK, `{"count": 1, "products": [{"product_name": "", "brands": "  ", "ingredients_text": "x"}]}`)

	got, err := NewLookupClient(ts.URL, time.Second).FetchByName(context.Background(), "blank")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	want := External{Name: "", Brand: "  ", Ingredients: "x"}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestLookupClient_Failures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"zero count", http.StatusOK, `{"count": 0, "products": []}`, ErrLookupNoMatch},
		{"missing count", http.StatusOK, `{"products": []}`, ErrLookupNoMatch},
		{"count without products", http.StatusOK, `{"count": 3, "products": []}`, ErrLookupBadResponse},
		{"malformed json", http.StatusOK, `{"count": `, ErrLookupBadResponse},
		{"html page", http.StatusOK, `<html>busy</html>`, ErrLookupBadResponse},
		{"server error", http.StatusServiceUnavailable, `{}`, ErrLookupBadResponse},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts, _ := newSearchTS(t, tc.status, tc.body)

			_, err := NewLookupClient(ts.URL, time.Second).FetchByName(context.Background(), "x")
			if !errors.Is(err, tc.want) {
				t.Fatalf("err=%v want %v", err, tc.want)
			}
			if !errors.Is(err, ErrLookupNotFound) {
				t.Fatalf("err=%v does not collapse to ErrLookupNotFound", err)
			}
		})
	}
}

func TestLookupClient_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := NewLookupClient(url, time.Second).FetchByName(context.Background(), "x")
	if !errors.Is(err, ErrLookupUnavailable) || !errors.Is(err, ErrLookupNotFound) {
		t.Fatalf("err=%v want ErrLookupUnavailable", err)
	}
}

func TestLookupClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(ts.Close)
	t.Cleanup(func() { close(release) })

	_, err := NewLookupClient(ts.URL, 50*time.Millisecond).FetchByName(context.Background(), "slow")
	if !errors.Is(err, ErrLookupUnavailable) {
		t.Fatalf("err=%v want ErrLookupUnavailable", err)
	}
}

func TestLookupResult(t *testing.T) {
	cases := map[string]error{
		resultFound:       nil,
		resultNoMatch:     ErrLookupNoMatch,
		resultUnavailable: ErrLookupUnavailable,
		resultBadResponse: ErrLookupBadResponse,
		resultError:       errors.New("boom"),
	}
	for want, err := range cases {
		if got := lookupResult(err); got != want {
			t.Fatalf("lookupResult(%v)=%q want %q", err, got, want)
		}
	}
}
