package kit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RouteLabel labels metrics by chi route pattern so that /inventory/1 and
// /inventory/2 share a series. Unrouted requests get a fixed label to keep
// cardinality bounded.
func RouteLabel(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if rp := rc.RoutePattern(); rp != "" {
			return rp
		}
	}
	return "unmatched"
}
