package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestNewBookTitleTrimsInput(t *testing.T) {
	title, err := NewBookTitle("  Dune  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title.String() != "Dune" {
		t.Fatalf("expected trimmed title, got %q", title.String())
	}
}

func TestNewBookTitleRejectsEmpty(t *testing.T) {
	if _, err := NewBookTitle("   "); !errors.Is(err, ErrInvalidTitle) {
		t.Fatalf("expected ErrInvalidTitle, got %v", err)
	}
}

func TestNewBookTitleRejectsOverlong(t *testing.T) {
	if _, err := NewBookTitle(strings.Repeat("a", 141)); !errors.Is(err, ErrInvalidTitle) {
		t.Fatalf("expected ErrInvalidTitle, got %v", err)
	}
}

func TestNewBookTitleAcceptsBoundaryLength(t *testing.T) {
	if _, err := NewBookTitle(strings.Repeat("a", 140)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewBookAuthorRejectsEmpty(t *testing.T) {
	if _, err := NewBookAuthor(""); !errors.Is(err, ErrInvalidAuthor) {
		t.Fatalf("expected ErrInvalidAuthor, got %v", err)
	}
}

func TestNewCommentTextRejectsBlank(t *testing.T) {
	if _, err := NewCommentText(" \n "); !errors.Is(err, ErrInvalidCommentText) {
		t.Fatalf("expected ErrInvalidCommentText, got %v", err)
	}
}

func TestNewCommentTextRejectsOverlong(t *testing.T) {
	if _, err := NewCommentText(strings.Repeat("x", 4001)); !errors.Is(err, ErrInvalidCommentText) {
		t.Fatalf("expected ErrInvalidCommentText, got %v", err)
	}
}

func TestNewCommentTextKeepsBodyVerbatim(t *testing.T) {
	text, err := NewCommentText("  gostei muito  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text.String() != "  gostei muito  " {
		t.Fatalf("expected verbatim body, got %q", text.String())
	}
}

func TestAddCommentLinksCommentToBook(t *testing.T) {
	book := Book{ID: 7, Title: "Dune"}

	book.AddComment(Comment{Text: "great book"})
	book.AddComment(Comment{Text: "re-read it"})

	if len(book.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(book.Comments))
	}
	for i, comment := range book.Comments {
		if comment.BookID != book.ID {
			t.Fatalf("comment %d not linked to book: %d", i, comment.BookID)
		}
	}
}
