package middleware

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Telemetry applies otelhttp server instrumentation: per-request span,
// duration, in-flight count and body sizes.
func Telemetry(next http.Handler) http.Handler {
	return otelhttp.NewMiddleware("smartspend-api")(next)
}
