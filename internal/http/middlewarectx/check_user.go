package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/wifi-access-portal/internal/http/response"
)

// CheckUserMiddleware сверяет uid пользователя из URL-параметра userUID
// с uid из JWT в контексте. Чужие данные недоступны: несовпадение uid
// даёт 404, чтобы не раскрывать существование других пользователей.
func CheckUserMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.CheckUserMiddleware"

			userUID, ok := r.Context().Value(UserUID).(string)
			if !ok || userUID == "" {
				log.Error("user uid not found in context", slog.String("op", op))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			requested := chi.URLParam(r, "userUID")
			if requested != "" && requested != userUID {
				log.Info("access to another user denied",
					slog.String("op", op), slog.String("requested", requested))
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error("not found"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
