package request // import "github.com/storyworld/storyworld/http/request"

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// RouteStringParam returns an URL route parameter as string.
func RouteStringParam(r *http.Request, param string) string {
	vars := mux.Vars(r)
	return vars[param]
}

// QueryStringParam returns a query string parameter, or the fallback
// when absent.
func QueryStringParam(r *http.Request, param, fallback string) string {
	value := r.URL.Query().Get(param)
	if value == "" {
		return fallback
	}
	return value
}

// QueryIntParam returns a query string parameter as int. Missing,
// malformed or negative values yield the fallback.
func QueryIntParam(r *http.Request, param string, fallback int) int {
	value, err := strconv.Atoi(r.URL.Query().Get(param))
	if err != nil {
		return fallback
	}
	if value < 0 {
		return fallback
	}
	return value
}
