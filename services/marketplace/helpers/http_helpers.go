package helpers

import (
	"errors"
	"net/http"

	"bid-marketplace/internal/marketerrors"
	"bid-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message.
// Unknown errors become an opaque 500; the original error stays server-side.
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, marketerrors.ErrCollectionNotFound):
		return http.StatusNotFound, "collection not found"
	case errors.Is(err, marketerrors.ErrBidNotFound):
		return http.StatusNotFound, "bid not found"
	case errors.Is(err, marketerrors.ErrDuplicateBid):
		return http.StatusBadRequest, "You already have a bid on this collection. Please update your existing bid."
	case errors.Is(err, marketerrors.ErrBidNotPending):
		return http.StatusBadRequest, "only pending bids can be changed"
	case errors.Is(err, marketerrors.ErrUserNotFound):
		return http.StatusBadRequest, "user not found"
	case errors.Is(err, marketerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, marketerrors.ErrInvalidCollection):
		return http.StatusBadRequest, "invalid collection details"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
