package middleware

import "net/http"

// HTMXRequest is the subset of htmx request headers the site reacts to.
type HTMXRequest struct {
	Request bool
	Target  string
	Trigger string
}

// HTMX parses htmx request headers into the context. Fragments and full
// pages share URLs, so responses vary on HX-Request.
func HTMX(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := HTMXRequest{
			Request: r.Header.Get("HX-Request") == "true",
			Target:  r.Header.Get("HX-Target"),
			Trigger: r.Header.Get("HX-Trigger"),
		}
		w.Header().Add("Vary", "HX-Request")
		next.ServeHTTP(w, r.WithContext(WithHTMX(r.Context(), h)))
	})
}
