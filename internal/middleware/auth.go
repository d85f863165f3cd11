package middleware

import (
	"strings"

	"dictioquiz/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgPasswordRequired = "🔒 This dictionary is private. Send the password to continue:"
	msgWrongPassword    = "❌ Wrong password."
	msgAccessGranted    = "✅ Access granted! Send /start to open the menu."
	msgTryLater         = "Something went wrong. Please try again later."
)

// AuthMiddleware creates authentication middleware.
// While the password gate is disabled every update passes through.
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if !authService.Enabled() {
				return next(c)
			}
			if c.Sender() == nil {
				return nil
			}
			userID := c.Sender().ID

			// Check authorization
			authorized, err := authService.IsAuthorized(userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return c.Send(msgTryLater)
			}
			if authorized {
				return next(c)
			}

			if c.Callback() != nil {
				return c.Respond(&tele.CallbackResponse{Text: msgPasswordRequired, ShowAlert: true})
			}

			text := strings.TrimSpace(c.Text())
			if text == "" || strings.HasPrefix(text, "/") {
				return c.Send(msgPasswordRequired)
			}

			if !authService.CheckPassword(text) {
				logger.Info("Wrong password attempt", zap.Int64("user_id", userID))
				return c.Send(msgWrongPassword)
			}

			if err := authService.AuthorizeUser(userID); err != nil {
				logger.Error("Failed to authorize user", zap.Error(err))
				return c.Send(msgTryLater)
			}

			logger.Info("User authorized", zap.Int64("user_id", userID))
			return c.Send(msgAccessGranted)
		}
	}
}
