package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"torino-tile-backend/internal/store"
)

func (s *Server) handleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := s.databaseStore.ListClients(r.Context())
	if err != nil {
		log.Println("list clients error:", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list clients")
		return
	}
	if clients == nil {
		clients = []store.Client{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"clients": clients})
}

func (s *Server) handleGetClient(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		s.writeError(w, http.StatusBadRequest, "invalid client id")
		return
	}
	client, err := s.databaseStore.GetClient(r.Context(), id)
	if err != nil {
		log.Println("get client error:", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get client")
		return
	}
	if client == nil {
		s.writeError(w, http.StatusNotFound, "client not found")
		return
	}
	s.writeJSON(w, http.StatusOK, client)
}
