package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"Nodal/internal/auth"
	"Nodal/internal/config"
	"Nodal/internal/middleware"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := config.Config{
		TokenKey:          "k",
		AdminLogin:        "admin",
		AdminPasswordHash: string(hash),
		SessionTTL:        time.Hour,
		RateLimitRPS:      100,
		RateLimitBurst:    100,
		MaxUploadMB:       1,
	}
	r := mux.NewRouter()
	HandleList(r, cfg, zap.NewNop())
	srv := httptest.NewServer(middleware.CORS(r))
	t.Cleanup(srv.Close)
	return srv
}

func token(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	res, err := http.Post(srv.URL+"/api/login", "application/json", strings.NewReader(`{"login":"admin","password":"pw"}`))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	var body auth.LoginResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	return body.Token
}

func call(t *testing.T, srv *httptest.Server, path, tok, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func TestPublicRoutes(t *testing.T) {
	srv := testServer(t)

	res, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get(middleware.RequestIDHeader))

	res, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestToolsRequireSession(t *testing.T) {
	srv := testServer(t)
	res := call(t, srv, "/api/tools/ipr/capacity", "", `{"q_test":1000,"pwf_test":200,"pr":1500,"pb":500}`)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestToolRoutes(t *testing.T) {
	srv := testServer(t)
	tok := token(t, srv)

	cases := []struct {
		path string
		body string
		want int
	}{
		{"/api/tools/ipr/productivity", `{"q_test":1000,"pwf_test":200,"pr":1500,"pb":500}`, http.StatusOK},
		{"/api/tools/ipr/productivity/darcy", `{"ko":100,"h":50,"bo":1.2,"uo":2,"re":1000,"rw":0.5}`, http.StatusOK},
		{"/api/tools/ipr/capacity", `{"q_test":1000,"pwf_test":200,"pr":1500,"pb":500}`, http.StatusOK},
		{"/api/tools/ipr/rate", `{"q_test":1000,"pwf_test":200,"pr":1500,"pb":500,"pwf":300}`, http.StatusOK},
		{"/api/tools/ipr/rate", `{"q_test":1000,"pwf_test":200,"pr":1500,"pb":500,"pwf":1600}`, http.StatusUnprocessableEntity},
		{"/api/tools/ipr/pressure", `{"q_test":1000,"pwf_test":1500,"pr":2500,"pb":3000,"q":800,"method":"vogel"}`, http.StatusOK},
		{"/api/tools/ipr/curve", `{"q_test":1000,"pwf_test":1500,"pr":2500,"pb":3000,"points":5}`, http.StatusOK},
		{"/api/tools/fluid/calc", `{"api":30,"wc":0.2}`, http.StatusOK},
		{"/api/tools/friction/calc", `{"q_bpd":500,"id_in":2.992}`, http.StatusOK},
		{"/api/tools/friction/calc", `{"q_bpd":500,"id_in":0}`, http.StatusBadRequest},
		{"/api/tools/batch/ipr", `{"items":[{"q_test":1000,"pwf_test":200,"pr":1500,"pb":500}]}`, http.StatusOK},
		{"/api/tools/nodal/calc", `{"q_test":1000,"pwf_test":2000,"pr":3000,"pb":1500,"rates":[0,1000],"api":30,"id_in":2.992,"tvd_ft":5000,"md_ft":6000}`, http.StatusOK},
		{"/api/tools/report/pdf", `{"q_test":1000,"pwf_test":200,"pr":1500,"pb":500}`, http.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.path, func(t *testing.T) {
			res := call(t, srv, c.path, tok, c.body)
			assert.Equal(t, c.want, res.StatusCode)
		})
	}
}
