package middleware

import (
	"net/http"
	"strings"

	"github.com/sisregip/sisregip-backend/pkg/ctxutil"
)

// OperatorHeader carries the name of the person driving the client.
const OperatorHeader = "X-Operator"

// Operator copies the operator name from the request header onto the
// context, where the services read it when writing audit entries. A
// missing header is not an error; the audit layer substitutes its
// sentinel for blank operators.
func Operator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		operator := strings.TrimSpace(r.Header.Get(OperatorHeader))
		ctx := ctxutil.WithOperator(r.Context(), operator)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
