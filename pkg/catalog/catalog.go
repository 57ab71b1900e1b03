// Package catalog implements the library catalog domain: adding books and
// lending them to patrons. Storage is abstracted behind the Store interface
// so the service logic is testable without a database.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BorrowPeriodDays is how long a patron keeps a book before it is due.
const BorrowPeriodDays = 14

// DueDateFormat is the layout used when rendering due dates to patrons.
const DueDateFormat = "2006-01-02"

// Book is one catalog entry.
type Book struct {
	ID              int64
	Title           string
	Author          string
	ISBN            string
	TotalCopies     int
	AvailableCopies int
}

// Borrowing records a single checkout of a book by a patron.
type Borrowing struct {
	BookID     int64
	PatronID   string
	BorrowedAt time.Time
	DueDate    time.Time
}

// ErrNotFound is returned by stores when a book does not exist.
var ErrNotFound = errors.New("book not found")

// ErrDuplicateISBN is returned when adding a book whose ISBN already exists.
var ErrDuplicateISBN = errors.New("a book with this ISBN already exists")

// Store persists catalog state.
type Store interface {
	ListBooks(ctx context.Context) ([]Book, error)
	GetBook(ctx context.Context, id int64) (Book, error)
	AddBook(ctx context.Context, b Book) (int64, error)
	RecordBorrowing(ctx context.Context, br Borrowing) error
}

// Service wraps a Store with validation and message wording.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a catalog service backed by store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Books returns the full catalog.
func (s *Service) Books(ctx context.Context) ([]Book, error) {
	return s.store.ListBooks(ctx)
}

// AddBookInput carries the raw form values for a new book.
type AddBookInput struct {
	Title       string
	Author      string
	ISBN        string
	TotalCopies string
}

// AddBook validates input and inserts a new book. On success it returns the
// confirmation message shown to the user.
func (s *Service) AddBook(ctx context.Context, in AddBookInput) (string, error) {
	title := strings.TrimSpace(in.Title)
	author := strings.TrimSpace(in.Author)
	isbn := strings.TrimSpace(in.ISBN)

	if title == "" {
		return "", errors.New("title is required")
	}
	if author == "" {
		return "", errors.New("author is required")
	}
	if !isDigits(isbn) || len(isbn) != 13 {
		return "", errors.New("ISBN must be exactly 13 digits")
	}
	copies, err := strconv.Atoi(strings.TrimSpace(in.TotalCopies))
	if err != nil || copies < 1 {
		return "", errors.New("total copies must be a positive number")
	}

	_, err = s.store.AddBook(ctx, Book{
		Title:           title,
		Author:          author,
		ISBN:            isbn,
		TotalCopies:     copies,
		AvailableCopies: copies,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateISBN) {
			return "", ErrDuplicateISBN
		}
		return "", fmt.Errorf("add book: %w", err)
	}

	return fmt.Sprintf("Book %q has been successfully added to the catalog.", title), nil
}

// BorrowBook checks a book out to a patron. On success it returns the
// confirmation message, which includes the due date.
func (s *Service) BorrowBook(ctx context.Context, bookID int64, patronID string) (string, error) {
	patronID = strings.TrimSpace(patronID)
	if !isDigits(patronID) || len(patronID) != 6 {
		return "", errors.New("patron ID must be exactly 6 digits")
	}

	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return "", err
	}
	if book.AvailableCopies < 1 {
		return "", fmt.Errorf("no copies of %q are currently available", book.Title)
	}

	borrowedAt := s.now()
	dueDate := borrowedAt.AddDate(0, 0, BorrowPeriodDays)
	err = s.store.RecordBorrowing(ctx, Borrowing{
		BookID:     bookID,
		PatronID:   patronID,
		BorrowedAt: borrowedAt,
		DueDate:    dueDate,
	})
	if err != nil {
		return "", fmt.Errorf("record borrowing: %w", err)
	}

	return fmt.Sprintf("Successfully borrowed %q. Due date: %s",
		book.Title, dueDate.Format(DueDateFormat)), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
