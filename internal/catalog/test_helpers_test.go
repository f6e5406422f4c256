package catalog

import (
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func mustTitle(t *testing.T, value string) BookTitle {
	t.Helper()
	title, err := NewBookTitle(value)
	if err != nil {
		t.Fatalf("unexpected title error: %v", err)
	}
	return title
}

func mustAuthor(t *testing.T, value string) BookAuthor {
	t.Helper()
	author, err := NewBookAuthor(value)
	if err != nil {
		t.Fatalf("unexpected author error: %v", err)
	}
	return author
}

func mustCommentText(t *testing.T, value string) CommentText {
	t.Helper()
	text, err := NewCommentText(value)
	if err != nil {
		t.Fatalf("unexpected comment text error: %v", err)
	}
	return text
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:estante_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Book{}, &Comment{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	clock := func() time.Time { return time.Unix(1700000600, 0).UTC() }

	service, err := NewService(ServiceConfig{
		Database: db,
		Clock:    clock,
	})
	if err != nil {
		t.Fatalf("failed to construct catalog service: %v", err)
	}

	return service, db
}
