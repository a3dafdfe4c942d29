package httpx

import (
	"net/http"
	"time"
)

const (
	sessionCookie = "dataset_id"
	datasetHeader = "X-Dataset-ID"
)

// cookie de sesión primero, luego header X-Dataset-ID
func datasetID(r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return r.Header.Get(datasetHeader)
}

func setSession(w http.ResponseWriter, id string, ttl time.Duration, secure bool) {
	c := &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl > 0 {
		c.MaxAge = int(ttl.Seconds())
	}
	http.SetCookie(w, c)
}
