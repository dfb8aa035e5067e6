package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/pagination"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/utils"
)

func paginationFrom(r *http.Request) pagination.Params {
	return pagination.FromQuery(r.URL.Query().Get)
}

// optionalQuery returns nil for a missing or blank parameter.
func optionalQuery(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil
	}
	return &v
}

// intQuery returns 0 for a missing or unparsable parameter.
func intQuery(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

func optionalIntQuery(r *http.Request, key string) *int {
	if optionalQuery(r, key) == nil {
		return nil
	}
	n := intQuery(r, key)
	return &n
}

// dateQuery returns the zero time for a missing parameter and ok=false for an
// unparsable one.
func dateQuery(r *http.Request, key string) (time.Time, bool) {
	v := optionalQuery(r, key)
	if v == nil {
		return time.Time{}, true
	}
	d, err := utils.ParseDate(*v)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
