package handlers

import (
	"net/http"

	"backoffice/internal/service"
)

func DashboardStats(svc *service.Dashboard, rs Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			rs.Error(w, r, err)
			return
		}
		rs.JSON(w, http.StatusOK, map[string]any{"stats": stats})
	}
}

func RecentActivity(svc *service.Dashboard, rs Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := atoiDefault(r.URL.Query().Get("limit"), 10)
		activity, err := svc.RecentActivity(r.Context(), limit)
		if err != nil {
			rs.Error(w, r, err)
			return
		}
		rs.JSON(w, http.StatusOK, map[string]any{"activity": activity})
	}
}

func UserGrowth(svc *service.Dashboard, rs Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		days := atoiDefault(r.URL.Query().Get("days"), 30)
		growth, err := svc.UserGrowth(r.Context(), days)
		if err != nil {
			rs.Error(w, r, err)
			return
		}
		rs.JSON(w, http.StatusOK, map[string]any{"growth": growth})
	}
}
