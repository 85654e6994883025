package http

import (
	"net/http"
	"strconv"

	"utmforge/pkg/config"
	apperrors "utmforge/pkg/errors"
)

// ExtractLimitOffset reads the link-history pagination parameters from the
// query string. Absent values fall back to the history defaults and
// out-of-range values are clamped rather than rejected; only non-numeric
// input is an error.
func ExtractLimitOffset(r *http.Request) (int, int64, error) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		return 0, 0, err
	}

	offset, err := queryInt(r, "offset")
	if err != nil {
		return 0, 0, err
	}

	return config.NormalizePaginationLimit(limit), config.NormalizeOffset(int64(offset)), nil
}

func queryInt(r *http.Request, name string) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperrors.InvalidInput("invalid " + name + " parameter: " + s)
	}
	return v, nil
}
