package httputil

import (
	"errors"
	"net/http"
	"strings"

	"github.com/iamasit07/tic-tac-toe/backend/internal/config"
)

const AuthCookieName = "auth_token"

func SetAuthCookie(w http.ResponseWriter, token string) {
	maxAge := config.AppConfig.JWTExpirationHours * 60 * 60
	isProduction := config.AppConfig.IsProduction()

	cookie := &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   isProduction, // Only require HTTPS in production
	}

	// SameSite=None requires Secure=true, so use Lax for development
	if isProduction {
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}

	http.SetCookie(w, cookie)
}

func ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// GetTokenFromRequest reads the auth cookie, falling back to an
// Authorization header for clients that cannot send cookies.
func GetTokenFromRequest(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(AuthCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Support "Bearer <token>" format
		return strings.TrimPrefix(authHeader, "Bearer "), nil
	}

	return "", errors.New("no auth token found in cookie or header")
}
