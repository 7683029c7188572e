package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"torino-tile-backend/internal/types"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		s.writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	hash, err := s.databaseStore.GetUserPassword(r.Context(), username)
	if err != nil {
		log.Println("login lookup error:", err)
		s.writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if hash == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		s.writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	sid := getOrCreateSessionID(r, w)
	s.memory.SetStaff(sid, username)
	log.Printf("[auth] staff login: %s (session %s)", username, sid)
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "username": username})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sid := getSessionID(r); sid != "" {
		s.memory.ClearStaff(sid)
	}
	ClearSessionCookie(w)
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
