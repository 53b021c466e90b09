package middleware

import (
	"net/http"
	"net/url"
)

// Flash messages ride in short-lived cookies so they survive exactly one
// redirect, for authenticated and anonymous visitors alike.
const (
	FlashError   = "flash_error"
	FlashSuccess = "flash_success"
)

// SetFlash stores a one-line message for the next page load.
func SetFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     kind,
		Value:    url.QueryEscape(message),
		Path:     "/",
		HttpOnly: true,
	})
}

// TakeFlash returns the stored message of the given kind and clears it.
func TakeFlash(w http.ResponseWriter, r *http.Request, kind string) string {
	cookie, err := r.Cookie(kind)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     kind,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}
