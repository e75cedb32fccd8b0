package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"payment_gateway/internal/adapter/http/handlers"
	"payment_gateway/internal/usecase"

	"github.com/gin-gonic/gin"
)

func TestPaymentRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1,
		handlers.NewPaymentHandler(usecase.NewChargeUseCase(nil, nil)),
		handlers.NewTransactionHandler(usecase.NewTransactionUseCase(nil, nil, nil)),
	)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/v1/ping", http.StatusOK},
		{http.MethodGet, "/v1/echo", http.StatusOK},
		{http.MethodGet, "/v1/balance", http.StatusServiceUnavailable},
		{http.MethodGet, "/v1/transactions/%20", http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
		})
	}
}
