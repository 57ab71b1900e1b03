// Package sqlite provides a SQLite-backed catalog store.
//
// The store lives in a single database file. Opening a path that does not
// exist yet creates the schema and inserts the sample catalog, so deleting
// the file resets the library to its seed state.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"libshelf/pkg/catalog"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS books (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    title            TEXT NOT NULL,
    author           TEXT NOT NULL,
    isbn             TEXT NOT NULL UNIQUE,
    total_copies     INTEGER NOT NULL,
    available_copies INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS borrowings (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    book_id     INTEGER NOT NULL REFERENCES books(id),
    patron_id   TEXT NOT NULL,
    borrowed_at INTEGER NOT NULL,
    due_date    INTEGER NOT NULL
);
`

// seedBooks is the sample catalog inserted into a fresh database.
var seedBooks = []catalog.Book{
	{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", ISBN: "9780743273565", TotalCopies: 3, AvailableCopies: 3},
	{Title: "To Kill a Mockingbird", Author: "Harper Lee", ISBN: "9780061120084", TotalCopies: 2, AvailableCopies: 2},
	{Title: "1984", Author: "George Orwell", ISBN: "9780451524935", TotalCopies: 4, AvailableCopies: 4},
}

// Store persists catalog state in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the catalog database at path, creating the schema and seed data
// on first use.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("database path is required")
	}
	// modernc.org/sqlite takes pragmas in _pragma=name(value) form; the
	// mattn-style _journal_mode/_foreign_keys parameters are silently ignored.
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	s := &Store{sqlDB: sqlDB}
	if err := s.seedIfEmpty(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) seedIfEmpty() error {
	var count int
	if err := s.sqlDB.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return fmt.Errorf("count books: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, b := range seedBooks {
		if _, err := s.AddBook(context.Background(), b); err != nil {
			return fmt.Errorf("seed %q: %w", b.Title, err)
		}
	}
	return nil
}

// ListBooks returns all books ordered by title.
func (s *Store) ListBooks(ctx context.Context) ([]catalog.Book, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, title, author, isbn, total_copies, available_copies
FROM books ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []catalog.Book
	for rows.Next() {
		var b catalog.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.TotalCopies, &b.AvailableCopies); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// GetBook returns the book with the given id.
func (s *Store) GetBook(ctx context.Context, id int64) (catalog.Book, error) {
	var b catalog.Book
	err := s.sqlDB.QueryRowContext(ctx, `
SELECT id, title, author, isbn, total_copies, available_copies
FROM books WHERE id = ?`, id).
		Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.TotalCopies, &b.AvailableCopies)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Book{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Book{}, fmt.Errorf("get book %d: %w", id, err)
	}
	return b, nil
}

// AddBook inserts a new book and returns its id.
func (s *Store) AddBook(ctx context.Context, b catalog.Book) (int64, error) {
	res, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO books (title, author, isbn, total_copies, available_copies)
VALUES (?, ?, ?, ?, ?)`,
		b.Title, b.Author, b.ISBN, b.TotalCopies, b.AvailableCopies)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, catalog.ErrDuplicateISBN
		}
		return 0, fmt.Errorf("insert book: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert book id: %w", err)
	}
	return id, nil
}

// RecordBorrowing inserts a borrowing row and decrements availability in one
// transaction. It fails if no copies are available.
func (s *Store) RecordBorrowing(ctx context.Context, br catalog.Borrowing) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin borrowing tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
UPDATE books SET available_copies = available_copies - 1
WHERE id = ? AND available_copies > 0`, br.BookID)
	if err != nil {
		return fmt.Errorf("decrement copies: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("decrement copies: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("book %d has no available copies", br.BookID)
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO borrowings (book_id, patron_id, borrowed_at, due_date)
VALUES (?, ?, ?, ?)`,
		br.BookID, br.PatronID, br.BorrowedAt.UTC().UnixMilli(), br.DueDate.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("insert borrowing: %w", err)
	}

	return tx.Commit()
}
