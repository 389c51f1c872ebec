// Package httptransport is the thin HTTP layer. It delegates to domain
// services without embedding business logic so transport concerns remain
// isolated.
package httptransport

import (
	"log/slog"
	"net/http"

	"northpole/internal/fulfillment"
	peopleservice "northpole/internal/people/service"
	httpjson "northpole/internal/transport/http/json"
	wishservice "northpole/internal/wish/service"
	dErrors "northpole/pkg/domain-errors"
)

// Handler holds the domain services the routes delegate to.
type Handler struct {
	people      *peopleservice.Service
	wishes      *wishservice.Service
	fulfillment *fulfillment.Service
	logger      *slog.Logger
}

// NewHandler constructs the HTTP handler.
func NewHandler(people *peopleservice.Service, wishes *wishservice.Service, fulfill *fulfillment.Service, logger *slog.Logger) *Handler {
	return &Handler{
		people:      people,
		wishes:      wishes,
		fulfillment: fulfill,
		logger:      logger,
	}
}

// writeError centralizes domain error translation to HTTP responses so all
// handlers produce a consistent JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	httpjson.WriteJSON(w, statusFor(err), map[string]string{
		"error": err.Error(),
	})
}

func statusFor(err error) int {
	for _, code := range []dErrors.Code{
		dErrors.CodeInvalidInput,
		dErrors.CodeWishNotFound,
		dErrors.CodeBeneficiaryNotFound,
		dErrors.CodeAddressMissing,
		dErrors.CodeWishLimitExceeded,
	} {
		if dErrors.HasCode(err, code) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
