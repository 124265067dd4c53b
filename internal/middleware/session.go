package middleware

import (
	"apiforge/internal/logger"
	"apiforge/internal/reqctx"
	"apiforge/internal/utils"
	helpers "apiforge/internal/utils/helpers"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// SessionParser умеет проверять сессионный токен.
type SessionParser interface {
	Authenticate(token string) (*utils.SessionClaims, error)
}

// SessionAuth пускает дальше только запросы с валидной сессией
// (Bearer-токен или сессионная cookie) и кладёт пользователя в контекст.
func SessionAuth(auth SessionParser, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			tokenString := sessionToken(r, cookieName)
			if tokenString == "" {
				logger.WithCtx(r.Context()).Debug("SessionAuth: нет сессии")
				helpers.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := auth.Authenticate(tokenString)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("SessionAuth: неверный или просроченный токен", zap.Error(err))
				helpers.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := reqctx.WithUser(r.Context(), reqctx.User{ID: claims.UserID, Email: claims.Email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionToken(r *http.Request, cookieName string) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}
