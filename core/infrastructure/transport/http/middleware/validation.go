package middleware

import (
	"maps"
	"net/http"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/wanderdata/wanderdata/core/infrastructure/transport/http/dto"
	"github.com/wanderdata/wanderdata/core/shared/errors"
)

var validate = validator.New()

// MaxParamLength bounds every query-string value
const MaxParamLength = 256

// ValidateQueryParams rejects requests whose query-string values break the
// given validator rule with 400 and a per-parameter detail list
func ValidateQueryParams(rule string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var details []dto.ErrorDetail
			query := r.URL.Query()
			for _, name := range slices.Sorted(maps.Keys(query)) {
				for _, v := range query[name] {
					if err := validate.Var(v, rule); err != nil {
						tag := rule
						if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
							tag = verrs[0].Tag()
						}
						details = append(details, dto.ErrorDetail{Field: name, Tag: tag, Message: "Validation failed"})
						break
					}
				}
			}
			if len(details) > 0 {
				body, _ := json.Marshal(dto.ValidationErrorResponse{
					Success: false,
					Code:    string(errors.ErrCodeValidationError),
					Error:   "Validation failed",
					Details: details,
				})
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				w.Write(body)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
