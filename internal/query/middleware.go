package query

import (
	"context"
	"net/http"
)

type ctxKey struct{}

// ErrorFunc writes the response for a failed query.
type ErrorFunc func(w http.ResponseWriter, r *http.Request, err error)

// AdvancedResults runs the paginator before next and stores the envelope in
// the request context. Failures go to onErr and next is not called.
func AdvancedResults(coll Collection, pop *Populate, onErr ErrorFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			env, err := Run(r.Context(), r.URL.Query(), coll, pop)
			if err != nil {
				onErr(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, env)))
		})
	}
}

// FromContext returns the envelope computed by AdvancedResults.
func FromContext(ctx context.Context) (Envelope, bool) {
	env, ok := ctx.Value(ctxKey{}).(Envelope)
	return env, ok
}
