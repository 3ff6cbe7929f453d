package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"epaw/internal/domain/users"
	"epaw/internal/middleware"
	"epaw/internal/platform/envelope"
	"epaw/internal/ports/auth"
	"epaw/internal/ports/storage"
)

const (
	msgUnauthorized = "No autorizado"
	msgForbidden    = "No tienes permisos para esta acción"
	msgInvalidBody  = "Datos inválidos"
	msgInternal     = "Error interno del servidor"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope.Envelope[any]{Success: true, Data: data})
}

func writeDataMessage(w http.ResponseWriter, status int, data any, msg string) {
	writeJSON(w, status, envelope.Envelope[any]{Success: true, Data: data, Message: msg})
}

func writePage[T any](w http.ResponseWriter, items []T, p envelope.Pagination) {
	writeJSON(w, http.StatusOK, envelope.Paginated[T]{Success: true, Data: items, Pagination: &p})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope.Envelope[any]{Success: false, Message: msg})
}

// storeError: ErrNotFound => 404 con notFound; el resto => 500 y log.
func (a *api) storeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, notFound)
		return
	}
	a.log.Error("store failed", map[string]any{
		"path":  r.URL.Path,
		"error": err,
	})
	writeError(w, http.StatusInternalServerError, msgInternal)
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// requireClaims responde 401 si el request no trae un token válido.
func requireClaims(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	c, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(c.UserID) == "" {
		writeError(w, http.StatusUnauthorized, msgUnauthorized)
		return auth.Claims{}, false
	}
	return c, true
}

// requireRole es requireClaims + 403 si el rol no está entre los permitidos.
func requireRole(w http.ResponseWriter, r *http.Request, roles ...users.Role) (auth.Claims, bool) {
	c, ok := requireClaims(w, r)
	if !ok {
		return c, false
	}
	if !slices.Contains(roles, users.Role(c.Role)) {
		writeError(w, http.StatusForbidden, msgForbidden)
		return auth.Claims{}, false
	}
	return c, true
}

func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(key)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func queryFloat(r *http.Request, key string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.URL.Query().Get(key)), 64)
	return v, err == nil
}

// paginate corta items según ?page y ?limit. page fuera de rango da data vacía.
func paginate[T any](r *http.Request, items []T, defLimit int) ([]T, envelope.Pagination) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", defLimit)

	total := len(items)
	pages := (total + limit - 1) / limit

	start := min((page-1)*limit, total)
	end := min(start+limit, total)

	out := make([]T, 0, end-start)
	out = append(out, items[start:end]...)

	return out, envelope.Pagination{
		CurrentPage:  page,
		TotalPages:   pages,
		TotalItems:   total,
		ItemsPerPage: limit,
		HasNextPage:  page < pages,
		HasPrevPage:  page > 1,
	}
}

// newestFirst invierte el orden de creación del store.
func newestFirst[T any](items []T) []T {
	slices.Reverse(items)
	return items
}

func where[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
