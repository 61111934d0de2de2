package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"go.uber.org/zap"

	"backoffice/internal/apperr"
)

// Responder maps service errors to HTTP responses. Anticipated error kinds
// pass through with their own status and message; anything else is logged
// with full detail and surfaced as a generic 500. In development posture
// the underlying error string is included to ease debugging.
type Responder struct {
	Lg          *zap.SugaredLogger
	Development bool
}

func (rs Responder) JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func (rs Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	var e *apperr.Error
	if errors.As(err, &e) && e.Kind != apperr.KindInternal {
		rs.JSON(w, apperr.HTTPStatus(e.Kind), map[string]string{"message": e.Message})
		return
	}
	rs.Lg.Errorw("request failed",
		"method", r.Method, "path", r.URL.Path, "error", err)
	msg := "internal server error"
	if rs.Development {
		msg = err.Error()
	}
	rs.JSON(w, http.StatusInternalServerError, map[string]string{"message": msg})
}

func (rs Responder) BadRequest(w http.ResponseWriter, msg string) {
	rs.JSON(w, http.StatusBadRequest, map[string]string{"message": msg})
}

// clientIP returns the request origin without the port. RealIP middleware
// has already resolved forwarded headers into RemoteAddr.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
