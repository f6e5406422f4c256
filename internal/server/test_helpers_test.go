package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/rfmoraes/estante/backend/internal/catalog"
	"gorm.io/gorm"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:estante_server_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&catalog.Book{}, &catalog.Comment{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	service, err := catalog.NewService(catalog.ServiceConfig{
		Database: db,
		Clock:    func() time.Time { return time.Unix(1700000000, 0).UTC() },
	})
	if err != nil {
		t.Fatalf("failed to construct catalog service: %v", err)
	}

	handler, err := NewHTTPHandler(Dependencies{CatalogService: service})
	if err != nil {
		t.Fatalf("failed to construct handler: %v", err)
	}
	return handler
}

func postForm(t *testing.T, handler http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func createBook(t *testing.T, handler http.Handler, title, author string, year int) *httptest.ResponseRecorder {
	t.Helper()
	recorder := postForm(t, handler, "/livro", url.Values{
		"titulo": {title},
		"autor":  {author},
		"ano":    {fmt.Sprintf("%d", year)},
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("failed to create book %q: status %d body %s", title, recorder.Code, recorder.Body.String())
	}
	return recorder
}
