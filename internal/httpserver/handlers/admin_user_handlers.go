package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/auth"
	"backoffice/internal/models"
	"backoffice/internal/service"
	"backoffice/internal/store"
)

func ListUsers(svc *service.Users, rs Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		params := store.ListParams{
			Page:     atoiDefault(q.Get("page"), 1),
			PageSize: atoiDefault(q.Get("limit"), 10),
			Search:   sanitize(q.Get("search")),
			SortBy:   q.Get("sort_by"),
			Order:    q.Get("order"),
		}
		users, pagination, err := svc.List(r.Context(), params)
		if err != nil {
			rs.Error(w, r, err)
			return
		}
		rs.JSON(w, http.StatusOK, map[string]any{
			"users":      users,
			"pagination": pagination,
		})
	}
}

func GetUser(svc *service.Users, rs Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := svc.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			rs.Error(w, r, err)
			return
		}
		rs.JSON(w, http.StatusOK, user)
	}
}

type createUserReq struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      string  `json:"role"`
}

func CreateUser(svc *service.Users, rs Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			rs.BadRequest(w, "invalid request body")
			return
		}
		user, err := svc.Create(r.Context(), service.CreateUserParams{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: sanitizePtr(req.FirstName),
			LastName:  sanitizePtr(req.LastName),
			Role:      req.Role,
		}, auth.Subject(r.Context()), clientIP(r))
		if err != nil {
			rs.Error(w, r, err)
			return
		}
		rs.JSON(w, http.StatusCreated, map[string]any{
			"message": "User created successfully",
			"user":    user,
		})
	}
}

func UpdateUser(svc *service.Users, rs Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.UserUpdate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			rs.BadRequest(w, "invalid request body")
			return
		}
		if req.FirstName.Set {
			req.FirstName.Value = sanitizePtr(req.FirstName.Value)
		}
		if req.LastName.Set {
			req.LastName.Value = sanitizePtr(req.LastName.Value)
		}
		user, err := svc.Update(r.Context(), chi.URLParam(r, "id"), req,
			auth.Subject(r.Context()), clientIP(r))
		if err != nil {
			rs.Error(w, r, err)
			return
		}
		rs.JSON(w, http.StatusOK, map[string]any{
			"message": "User updated successfully",
			"user":    user,
		})
	}
}

func DeleteUser(svc *service.Users, rs Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := svc.Delete(r.Context(), chi.URLParam(r, "id"),
			auth.Subject(r.Context()), clientIP(r))
		if err != nil {
			rs.Error(w, r, err)
			return
		}
		rs.JSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
	}
}

func atoiDefault(s string, fallback int) int {
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return fallback
}
