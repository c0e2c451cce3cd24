package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/windoze95/lookforrecipes/internal/config"
	"github.com/windoze95/lookforrecipes/internal/service"
	"github.com/windoze95/lookforrecipes/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type nopBot struct{}

func (nopBot) Dispatch(ctx context.Context, update tgbotapi.Update) {}

func newTestRouter(cfg *config.Config) *gin.Engine {
	svc := service.NewSearchService(cfg, &testutil.MockSearchProvider{}, nil)
	return SetupRouter(cfg, svc, nopBot{}, nil)
}

func TestSetupRouter_Ping(t *testing.T) {
	r := newTestRouter(testutil.TestConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header should be set")
	}
}

func TestSetupRouter_WebhookOnlyInProduction(t *testing.T) {
	cfg := testutil.TestConfig()
	body := `{"update_id": 1}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/webhook/"+cfg.EnvVars.TelegramToken, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	newTestRouter(cfg).ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("development: status = %d, want %d", w.Code, http.StatusNotFound)
	}

	cfg.EnvVars.AppEnv = config.EnvProduction
	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/webhook/"+cfg.EnvVars.TelegramToken, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	newTestRouter(cfg).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("production: status = %d, want %d", w.Code, http.StatusOK)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/webhook/wrong", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	newTestRouter(cfg).ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestSetupRouter_SearchRequiresKeyword(t *testing.T) {
	r := newTestRouter(testutil.TestConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/recipe", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
