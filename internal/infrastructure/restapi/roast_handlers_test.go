package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"roast_agent/internal/domain/entity"
)

const validAddress = "0x0000000000000000000000000000000000000000000000000000000000000abc"

type stubRoastService struct {
	got entity.RoastRequest
	fn  func(req entity.RoastRequest) (*entity.RoastResult, error)
}

func (s *stubRoastService) Roast(_ context.Context, req entity.RoastRequest) (*entity.RoastResult, error) {
	s.got = req
	return s.fn(req)
}

func newTestRouter(svc *stubRoastService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewRoastHandler(svc, "https://roast.example", zap.NewNop())
	router := SetupRouter(h, zap.NewNop(), RouterOptions{MetricsHandler: promhttp.Handler(), SwaggerPath: "/swagger"})
	router.GET("/panic", func(*gin.Context) { panic("kaboom") })
	return router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestPostRoast_Success(t *testing.T) {
	svc := &stubRoastService{fn: func(req entity.RoastRequest) (*entity.RoastResult, error) {
		return &entity.RoastResult{Address: req.Address, Network: "mainnet", Roast: "Nice wallet!"}, nil
	}}
	router := newTestRouter(svc)

	w := do(router, http.MethodPost, "/api/roast", `{"address":"`+validAddress+`","network":"testnet"}`)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[RoastResponse](t, w)
	assert.Equal(t, "Nice wallet!", resp.Roast)
	assert.True(t, strings.HasPrefix(resp.ShareURL, "https://twitter.com/intent/tweet?text="))
	assert.Contains(t, resp.ShareURL, "Nice%20wallet%21")
	assert.Equal(t, entity.RoastRequest{Address: validAddress, Network: "testnet"}, svc.got)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestPostRoast_BadRequests(t *testing.T) {
	called := false
	svc := &stubRoastService{fn: func(entity.RoastRequest) (*entity.RoastResult, error) {
		called = true
		return nil, nil
	}}
	router := newTestRouter(svc)

	for name, body := range map[string]string{
		"not json":        `{"address":`,
		"missing address": `{"network":"mainnet"}`,
		"empty address":   `{"address":""}`,
		"wrong type":      `{"address":42}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/api/roast", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, entity.MsgInvalidAddress, decode[ErrorResponse](t, w).Error)
		})
	}
	assert.False(t, called)
}

func TestPostRoast_ErrorKinds(t *testing.T) {
	tests := []struct {
		kind   entity.ErrorKind
		status int
		msg    string
	}{
		{entity.KindValidation, http.StatusBadRequest, entity.MsgInvalidAddress},
		{entity.KindConfiguration, http.StatusInternalServerError, entity.MsgConfiguration},
		{entity.KindFetch, http.StatusInternalServerError, entity.MsgFetch},
		{entity.KindFetchTimeout, http.StatusInternalServerError, entity.MsgFetchTimeout},
		{entity.KindGeneration, http.StatusInternalServerError, entity.MsgGeneration},
		{entity.KindGenerationTimeout, http.StatusInternalServerError, entity.MsgGenerationTimeout},
		{entity.KindEmptyGeneration, http.StatusInternalServerError, entity.MsgEmptyGeneration},
		{entity.KindUnknown, http.StatusInternalServerError, entity.MsgUnknown},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			svc := &stubRoastService{fn: func(req entity.RoastRequest) (*entity.RoastResult, error) {
				return nil, &entity.RoastError{Kind: tt.kind, Address: req.Address, Err: assert.AnError}
			}}
			w := do(newTestRouter(svc), http.MethodPost, "/api/roast", `{"address":"`+validAddress+`"}`)

			assert.Equal(t, tt.status, w.Code)
			resp := decode[ErrorResponse](t, w)
			assert.Equal(t, tt.msg, resp.Error)
			assert.NotContains(t, resp.Error, assert.AnError.Error())
		})
	}
}

func TestPostRoast_UnclassifiedError(t *testing.T) {
	svc := &stubRoastService{fn: func(entity.RoastRequest) (*entity.RoastResult, error) {
		return nil, assert.AnError
	}}
	w := do(newTestRouter(svc), http.MethodPost, "/api/roast", `{"address":"`+validAddress+`"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, entity.MsgUnknown, decode[ErrorResponse](t, w).Error)
}

func TestRecovery(t *testing.T) {
	w := do(newTestRouter(&stubRoastService{}), http.MethodGet, "/panic", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, entity.MsgUnknown, decode[ErrorResponse](t, w).Error)
}

func TestRequestIDPropagation(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	newTestRouter(&stubRoastService{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestIndexAndMetrics(t *testing.T) {
	router := newTestRouter(&stubRoastService{})

	w := do(router, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "/api/roast")

	w = do(router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSwaggerDocs(t *testing.T) {
	w := do(newTestRouter(&stubRoastService{}), http.MethodGet, "/swagger/doc.json", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/roast")
	assert.Contains(t, w.Body.String(), "share_url")
}
