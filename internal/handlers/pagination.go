package handlers

import (
	"strconv"

	"storeadmin/internal/apperror"
)

const (
	defaultLimit = int64(20)
	maxLimit     = int64(100)
)

// parsePaginationParams returns page 0 and limit 0 when neither value is
// given, which means the whole list.
func parsePaginationParams(pageStr, limitStr string) (int64, int64, error) {
	if pageStr == "" && limitStr == "" {
		return 0, 0, nil
	}

	page := int64(1)
	limit := defaultLimit

	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return 0, 0, apperror.Validation(apperror.FieldError{Field: "page", ErrorMessage: "page must be a positive integer"})
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 {
			return 0, 0, apperror.Validation(apperror.FieldError{Field: "limit", ErrorMessage: "limit must be a positive integer"})
		}
		limit = l
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return page, limit, nil
}
