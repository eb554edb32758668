package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"schoolhub-backend/internal/domain"
	"schoolhub-backend/internal/utils"
)

// pathID extracts an int32 id from the route path
func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, &domain.InvalidArgumentError{Field: name, Value: raw}
	}
	return int32(id), nil
}

// queryInt32 reads an optional int32 query parameter with a default
func queryInt32(r *http.Request, name string, def int32) (int32, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, &domain.InvalidArgumentError{Field: name, Value: raw}
	}
	return int32(v), nil
}

// queryOwnerID reads the required owner_id scoping parameter
func queryOwnerID(r *http.Request) (int32, error) {
	raw := r.URL.Query().Get("owner_id")
	if raw == "" {
		return 0, &domain.InvalidArgumentError{Field: "owner_id", Value: ""}
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, &domain.InvalidArgumentError{Field: "owner_id", Value: raw}
	}
	return int32(id), nil
}

// queryDate reads an optional yyyy-mm-dd query parameter
func queryDate(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		return time.Time{}, &domain.InvalidArgumentError{Field: name, Value: raw}
	}
	return t, nil
}

// optionalDate parses a yyyy-mm-dd body field; empty means "today"
func optionalDate(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := utils.ParseDate(raw)
	if err != nil {
		return time.Time{}, &domain.InvalidArgumentError{Field: field, Value: raw}
	}
	return t, nil
}

// pagination reads page / page_size with the usual defaults
func pagination(r *http.Request) (int32, int32, error) {
	page, err := queryInt32(r, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	pageSize, err := queryInt32(r, "page_size", 20)
	if err != nil {
		return 0, 0, err
	}
	return page, pageSize, nil
}
