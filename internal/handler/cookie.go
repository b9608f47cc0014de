package handler

import (
	"net/http"
	"time"

	"ideaboard/internal/auth"
)

const refreshCookieName = "refreshToken"

// refreshCookie builds the refresh token cookie. Clearing must use the same
// attributes as setting or browsers keep the old cookie.
type refreshCookie struct {
	secure bool
}

func (r refreshCookie) base() *http.Cookie {
	return &http.Cookie{
		Name:     refreshCookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.secure,
		SameSite: http.SameSiteNoneMode,
	}
}

func (r refreshCookie) issue(token string) *http.Cookie {
	cookie := r.base()
	cookie.Value = token
	cookie.MaxAge = int(auth.RefreshTokenExpiry / time.Second)
	cookie.Expires = time.Now().Add(auth.RefreshTokenExpiry)
	return cookie
}

func (r refreshCookie) clear() *http.Cookie {
	cookie := r.base()
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)
	return cookie
}
