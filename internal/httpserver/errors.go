package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"jewelry-storefront/internal/backend"
	"jewelry-storefront/internal/catalog"
	"jewelry-storefront/internal/domain"
	"jewelry-storefront/internal/editor"
	"jewelry-storefront/internal/route"
	"jewelry-storefront/internal/session"
)

// writeError maps err to a status and an {"error": ...} body.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	body := gin.H{"error": err.Error()}
	var loadErr *catalog.LoadError
	if errors.As(err, &loadErr) {
		body["collection"] = loadErr.Kind.Plural()
	}
	if status == http.StatusInternalServerError {
		body["error"] = "internal error"
	}
	c.AbortWithStatusJSON(status, body)
}

func statusFor(err error) int {
	var apiErr *backend.APIError
	switch {
	case errors.As(err, new(*catalog.LoadError)):
		// A failed collection load is a backend fault whatever its status.
		return http.StatusBadGateway
	case errors.Is(err, route.ErrUnknownRoute), errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict), errors.Is(err, editor.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, editor.ErrIncomplete),
		errors.Is(err, editor.ErrUnknownSubcategory),
		errors.Is(err, editor.ErrNotScoped),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNoSession), errors.Is(err, backend.ErrNoToken):
		return http.StatusUnauthorized
	case errors.As(err, &apiErr):
		if apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden {
			return apiErr.Status
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
