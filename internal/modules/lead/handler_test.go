package lead

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"servic/internal/domain"
	"servic/internal/middleware"
	"servic/internal/pkg/jwt"
	"servic/internal/pkg/logger"
)

var testTokens = jwt.New("lead-test-secret", time.Hour)

func newTestRouter(f *leadFixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api", middleware.Session(testTokens, "token"))
	NewHandler(f.service, logger.Discard()).RegisterRoutes(api, func(c *gin.Context) { c.Next() })
	return r
}

func send(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_RecordLeadAndStats(t *testing.T) {
	f := newLeadFixture(t)
	owner, p := f.ownedProvider(t)
	f.publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	r := newTestRouter(f)

	w := send(r, http.MethodPost, "/api/leads", "", RecordLeadRequest{ProviderID: p.ID, Type: "call"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"type":"call"`)

	token, err := testTokens.GenerateToken(owner.ID, owner.Email, owner.Name, string(domain.RoleProvider))
	require.NoError(t, err)
	w = send(r, http.MethodGet, "/api/leads/my-stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"providerId":`+jsonInt(p.ID)+`,"call":1,"whatsapp":0,"total":1}}`, w.Body.String())
}

func TestHandler_StatsRequiresProviderRole(t *testing.T) {
	f := newLeadFixture(t)
	r := newTestRouter(f)

	w := send(r, http.MethodGet, "/api/leads/my-stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := testTokens.GenerateToken(7, "client@servic.com", "Client", string(domain.RoleUser))
	require.NoError(t, err)
	w = send(r, http.MethodGet, "/api/leads/my-stats", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_RecordLeadBadType(t *testing.T) {
	f := newLeadFixture(t)
	w := send(newTestRouter(f), http.MethodPost, "/api/leads", "", RecordLeadRequest{ProviderID: 1, Type: "sms"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"INVALID_LEAD_TYPE"`)
}

func jsonInt(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
