package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

// getOptionalIntQueryParam returns nil when the parameter is missing or not a number
func getOptionalIntQueryParam(r *http.Request, key string) *int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return nil
	}
	return &intVal
}

func getOptionalStringQueryParam(r *http.Request, key string) *string {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil
	}
	return &val
}

// getPeriodURLParams reads {year} and {month}. Non-numeric values become 0 and fail period validation.
func getPeriodURLParams(r *http.Request) (int, int) {
	year, _ := strconv.Atoi(chi.URLParam(r, "year"))
	month, _ := strconv.Atoi(chi.URLParam(r, "month"))
	return year, month
}
