package server

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"libshelf/pkg/catalog"
)

// flashCookie carries a one-shot notification across the post-redirect-get
// cycle. The value is "<kind>|<message>" base64-encoded to stay cookie-safe.
const flashCookie = "libshelf_flash"

type flash struct {
	Kind    string // "success" or "error"
	Message string
}

type handlers struct {
	svc *catalog.Service
	log *zap.Logger
}

func (h *handlers) home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/catalog", http.StatusFound)
}

func (h *handlers) showCatalog(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.Books(r.Context())
	if err != nil {
		h.log.Error("list books", zap.Error(err))
		http.Error(w, "failed to load catalog", http.StatusInternalServerError)
		return
	}

	data := catalogPageData{
		Books: books,
		Flash: popFlash(w, r),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := catalogTemplate.Execute(w, data); err != nil {
		h.log.Error("render catalog", zap.Error(err))
	}
}

func (h *handlers) showAddBookForm(w http.ResponseWriter, r *http.Request) {
	data := addBookPageData{Flash: popFlash(w, r)}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := addBookTemplate.Execute(w, data); err != nil {
		h.log.Error("render add book form", zap.Error(err))
	}
}

func (h *handlers) addBook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	msg, err := h.svc.AddBook(r.Context(), catalog.AddBookInput{
		Title:       r.PostFormValue("title"),
		Author:      r.PostFormValue("author"),
		ISBN:        r.PostFormValue("isbn"),
		TotalCopies: r.PostFormValue("total_copies"),
	})
	if err != nil {
		h.log.Warn("add book rejected", zap.Error(err))
		setFlash(w, flash{Kind: "error", Message: err.Error()})
		http.Redirect(w, r, "/add_book", http.StatusSeeOther)
		return
	}

	setFlash(w, flash{Kind: "success", Message: msg})
	http.Redirect(w, r, "/catalog", http.StatusSeeOther)
}

func (h *handlers) borrowBook(w http.ResponseWriter, r *http.Request) {
	bookID, err := strconv.ParseInt(chi.URLParam(r, "bookID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid book id", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	msg, err := h.svc.BorrowBook(r.Context(), bookID, r.PostFormValue("patron_id"))
	if err != nil {
		h.log.Warn("borrow rejected", zap.Int64("book_id", bookID), zap.Error(err))
		setFlash(w, flash{Kind: "error", Message: err.Error()})
		http.Redirect(w, r, "/catalog", http.StatusSeeOther)
		return
	}

	setFlash(w, flash{Kind: "success", Message: msg})
	http.Redirect(w, r, "/catalog", http.StatusSeeOther)
}

func setFlash(w http.ResponseWriter, f flash) {
	value := base64.URLEncoding.EncodeToString([]byte(f.Kind + "|" + f.Message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
	})
}

// popFlash reads and clears the flash cookie, if any.
func popFlash(w http.ResponseWriter, r *http.Request) *flash {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:   flashCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	decoded, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	kind, msg, ok := strings.Cut(string(decoded), "|")
	if !ok {
		return nil
	}
	return &flash{Kind: kind, Message: msg}
}
