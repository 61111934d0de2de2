package handlers

import (
	"encoding/json"
	"net/http"

	"backoffice/internal/auth"
	"backoffice/internal/config"
	"backoffice/internal/service"
)

type registerReq struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

func Register(svc *service.Auth, rs Responder, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			rs.BadRequest(w, "invalid request body")
			return
		}
		user, token, err := svc.Register(r.Context(), service.RegisterParams{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: sanitizePtr(req.FirstName),
			LastName:  sanitizePtr(req.LastName),
		}, clientIP(r))
		if err != nil {
			rs.Error(w, r, err)
			return
		}
		setTokenCookie(w, token, cfg)
		rs.JSON(w, http.StatusCreated, map[string]any{
			"message": "User registered successfully",
			"user":    user,
			"token":   token,
		})
	}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(svc *service.Auth, rs Responder, cfg config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			rs.BadRequest(w, "invalid request body")
			return
		}
		user, token, err := svc.Login(r.Context(), req.Email, req.Password, clientIP(r))
		if err != nil {
			rs.Error(w, r, err)
			return
		}
		setTokenCookie(w, token, cfg)
		rs.JSON(w, http.StatusOK, map[string]any{
			"message": "Login successful",
			"user":    user,
			"token":   token,
		})
	}
}

func Logout(svc *service.Auth, rs Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context(), auth.Subject(r.Context()), clientIP(r)); err != nil {
			rs.Error(w, r, err)
			return
		}
		clearTokenCookie(w)
		rs.JSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
	}
}

func Me(svc *service.Auth, rs Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := svc.CurrentUser(r.Context(), auth.Subject(r.Context()))
		if err != nil {
			rs.Error(w, r, err)
			return
		}
		rs.JSON(w, http.StatusOK, user)
	}
}

func setTokenCookie(w http.ResponseWriter, token string, cfg config.Config) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.JWTTTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteStrictMode,
	})
}

func clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
