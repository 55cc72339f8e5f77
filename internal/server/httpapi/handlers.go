package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/R3gret/ITPM-Backend/internal/common"
	"github.com/R3gret/ITPM-Backend/internal/server/auth"
	"github.com/R3gret/ITPM-Backend/internal/server/models"
	"github.com/R3gret/ITPM-Backend/internal/server/services"
	"github.com/gorilla/mux"
)

type authResponse struct {
	Success bool            `json:"success"`
	Token   string          `json:"token"`
	User    models.UserView `json:"user"`
}

type identityView struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	Role     auth.Role `json:"role"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      "healthy",
		"timestamp":   s.now().UTC().Format(time.RFC3339),
		"environment": s.environment,
	})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{
		"error":     "Not found",
		"path":      r.URL.Path,
		"method":    r.Method,
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if !decodeJSON(w, r, &in) {
		return
	}

	res, err := s.users.Register(r.Context(), in)
	if err != nil {
		s.errors.write(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{Success: true, Token: res.Token, User: res.User})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if !decodeJSON(w, r, &in) {
		return
	}

	res, err := s.users.Login(r.Context(), in)
	if err != nil {
		s.errors.write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Success: true, Token: res.Token, User: res.User})
}

func (s *Server) me(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	user, err := s.users.Me(r.Context(), id)
	if err != nil {
		s.errors.write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "user": user})
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request, _ auth.Identity) {
	users, err := s.users.ListUsers(r.Context())
	if err != nil {
		s.errors.write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "users": users})
}

func (s *Server) protected(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "This is protected",
		"user":    identityView{ID: id.UserID, Username: id.Username, Role: id.Role},
	})
}

func (s *Server) listResorts(w http.ResponseWriter, r *http.Request) {
	items, err := s.resorts.List(r.Context())
	if err != nil {
		s.errors.write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": items})
}

func (s *Server) getResort(w http.ResponseWriter, r *http.Request) {
	id, ok := resortID(w, r)
	if !ok {
		return
	}
	item, err := s.resorts.Get(r.Context(), id)
	if err != nil {
		s.resortError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": item})
}

func (s *Server) createResort(w http.ResponseWriter, r *http.Request, _ auth.Identity) {
	var in services.ResortInput
	if !decodeJSON(w, r, &in) {
		return
	}
	id, err := s.resorts.Create(r.Context(), in)
	if err != nil {
		s.errors.write(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":   true,
		"resort_id": id,
		"message":   "Resort created successfully",
	})
}

func (s *Server) updateResort(w http.ResponseWriter, r *http.Request, _ auth.Identity) {
	id, ok := resortID(w, r)
	if !ok {
		return
	}
	var in services.ResortInput
	if !decodeJSON(w, r, &in) {
		return
	}
	if err := s.resorts.Update(r.Context(), id, in); err != nil {
		s.resortError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Resort updated successfully"})
}

func (s *Server) deleteResort(w http.ResponseWriter, r *http.Request, caller auth.Identity) {
	id, ok := resortID(w, r)
	if !ok {
		return
	}
	if err := s.resorts.Delete(r.Context(), id); err != nil {
		s.resortError(w, r, err)
		return
	}
	s.logger.Info(r.Context(), "resort deleted", "resort_id", id, "by", caller.UserID)
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Resort deleted successfully"})
}

func (s *Server) recordLocation(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	var in services.LocationInput
	if !decodeJSON(w, r, &in) {
		return
	}
	ping, err := s.locations.Record(r.Context(), id, in)
	if err != nil {
		s.errors.write(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": ping})
}

func (s *Server) listLocations(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	pings, err := s.locations.ListMine(r.Context(), id)
	if err != nil {
		s.errors.write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": pings})
}

func (s *Server) resortError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, common.ErrorNotFound) {
		writeMessage(w, http.StatusNotFound, "Resort not found")
		return
	}
	s.errors.write(w, r, err)
}

func resortID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeMessage(w, http.StatusNotFound, "Resort not found")
		return 0, false
	}
	return id, true
}
