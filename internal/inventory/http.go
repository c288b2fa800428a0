package inventory

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"StockRoom/pkg/kit"
)

const maxBodyBytes = 1 << 20

const (
	msgItemNotFound     = "Item not found"
	msgMissingFields    = "Missing required fields"
	msgExternalNotFound = "Product not found from external API"
	msgItemDeleted      = "Item deleted"
	msgBadJSON          = "bad json"
	msgServerError      = "server error"
)

type Server struct {
	Store  Store
	Lookup ProductLookup
	Log    *zap.Logger

	// Optional.
	Lookups      *LookupMetrics
	FetchLimiter *kit.IPRateLimiter
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	var fetch http.Handler = http.HandlerFunc(s.fetch)
	if s.FetchLimiter != nil {
		fetch = s.FetchLimiter.Middleware(fetch)
	}

	r.Route("/inventory", func(rr chi.Router) {
		rr.Get("/", s.list)
		rr.Post("/", s.create)
		rr.Method(http.MethodGet, "/fetch/{name}", fetch)
		rr.Get("/{id}", s.get)
		rr.Patch("/{id}", s.patch)
		rr.Delete("/{id}", s.delete)
	})

	return r
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.List(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err, "list")
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, msgItemNotFound, nil)
		return
	}

	p, err := s.Store.Get(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err, "get")
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	f, err := decodeFields(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, msgBadJSON, map[string]any{"cause": err.Error()})
		return
	}

	p, err := s.Store.Insert(r.Context(), f)
	if err != nil {
		s.writeStoreError(w, r, err, "insert")
		return
	}
	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) patch(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, msgItemNotFound, nil)
		return
	}

	f, err := decodeFields(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, msgBadJSON, map[string]any{"cause": err.Error()})
		return
	}

	p, err := s.Store.Patch(r.Context(), id, f)
	if err != nil {
		s.writeStoreError(w, r, err, "patch")
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := itemID(r)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, msgItemNotFound, nil)
		return
	}

	if err := s.Store.Delete(r.Context(), id); err != nil {
		s.writeStoreError(w, r, err, "delete")
		return
	}
	kit.WriteMessage(w, http.StatusOK, msgItemDeleted)
}

// fetch imports the first external match as a new record with zero stock,
// zero price and no barcode. Every lookup failure is reported as 404.
func (s *Server) fetch(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	// chi routes on RawPath when it is set, so the segment is still escaped.
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}

	ext, err := s.Lookup.FetchByName(r.Context(), name)
	s.Lookups.observe(err)
	if err != nil {
		if s.Log != nil {
			s.Log.Warn("external lookup failed",
				zap.String("name", name),
				zap.String("result", lookupResult(err)),
				zap.Error(err),
			)
		}
		kit.WriteError(w, r, http.StatusNotFound, msgExternalNotFound, nil)
		return
	}

	qty, price := 0, 0.0
	p, err := s.Store.Insert(r.Context(), Fields{
		Name:        &ext.Name,
		Brand:       &ext.Brand,
		Quantity:    &qty,
		Price:       &price,
		Ingredients: &ext.Ingredients,
	})
	if err != nil {
		s.writeStoreError(w, r, err, "import")
		return
	}
	kit.WriteJSON(w, http.StatusCreated, p)
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error, op string) {
	switch {
	case errors.Is(err, ErrNotFound):
		kit.WriteError(w, r, http.StatusNotFound, msgItemNotFound, nil)
	case errors.Is(err, ErrValidation):
		kit.WriteError(w, r, http.StatusBadRequest, msgMissingFields, nil)
	default:
		if s.Log != nil {
			s.Log.Error("store operation failed", zap.String("op", op), zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, msgServerError, nil)
	}
}

// itemID parses the {id} segment. Non-integer ids never match a record.
func itemID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

func decodeFields(w http.ResponseWriter, r *http.Request) (Fields, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return Fields{}, err
	}
	if raw == nil {
		return Fields{}, errors.New("body must be a json object")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return Fields{}, errors.New("extra data after json object")
	}

	return DecodeFields(raw)
}
