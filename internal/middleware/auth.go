package middleware

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"mockly/interview/internal/models"
	"mockly/interview/internal/utils"
)

const ownerIDKey contextKey = "owner_id"

// RequireAuth resolves the caller's user id from a JWT and stores it as the
// owner id for downstream handlers.
func RequireAuth(secret string, logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := utils.VerifyToken(r, secret)
			if err != nil {
				logger.Debug("rejected request", zap.String("path", r.URL.Path), zap.Error(err))
				writeUnauthorized(w, err)
				return
			}
			ownerID, err := utils.GetUserIDFromClaims(claims)
			if err != nil {
				writeUnauthorized(w, utils.ErrInvalidClaims)
				return
			}

			ctx := context.WithValue(r.Context(), ownerIDKey, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnerID returns the authenticated owner id, or "" outside RequireAuth.
func OwnerID(r *http.Request) string {
	id, _ := r.Context().Value(ownerIDKey).(string)
	return id
}

// WithOwnerID is used by tests and internal callers that authenticate elsewhere.
func WithOwnerID(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, ownerIDKey, ownerID)
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	resp := models.ErrorResponse{Code: "invalid_token", Message: "Invalid token. Please login again."}
	switch {
	case errors.Is(err, utils.ErrMissingToken):
		resp = models.ErrorResponse{Code: "unauthorized", Message: "Unauthorized request. Please login."}
	case errors.Is(err, utils.ErrTokenExpired):
		resp = models.ErrorResponse{Code: "token_expired", Message: "Token expired. Please login again."}
	}
	utils.JSON(w, http.StatusUnauthorized, resp)
}
