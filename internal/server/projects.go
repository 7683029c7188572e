package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"torino-tile-backend/internal/label"
	"torino-tile-backend/internal/store"
	"torino-tile-backend/internal/types"
)

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req types.ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.TorinoCode) == "" {
		s.writeError(w, http.StatusBadRequest, "tile_code is required")
		return
	}

	tile, err := s.databaseStore.GetTileByCode(r.Context(), req.TorinoCode)
	if err != nil {
		log.Println("project tile lookup error:", err)
		s.writeError(w, http.StatusInternalServerError, "failed to create project")
		return
	}
	if tile == nil {
		s.writeError(w, http.StatusBadRequest, "unknown tile code")
		return
	}

	id, err := s.databaseStore.CreateProject(r.Context(), store.Project{
		TorinoCode:   req.TorinoCode,
		ClientID:     req.ClientID,
		ClientName:   req.ClientName,
		Address:      req.Address,
		SqFt:         req.SqFt,
		InstallDate:  req.InstallDate,
		InstallerFee: req.InstallerFee,
		Budget:       req.Budget,
		Schedule:     req.Schedule,
		Notes:        req.Notes,
	})
	if err != nil {
		log.Println("create project error:", err)
		s.writeError(w, http.StatusInternalServerError, "failed to create project")
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.databaseStore.ListProjects(r.Context())
	if err != nil {
		log.Println("list projects error:", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}
	if projects == nil {
		projects = []store.Project{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project, ok := s.projectFromPath(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, project)
}

// handleWorkOrder renders the installer work-order PDF for a project.
func (s *Server) handleWorkOrder(w http.ResponseWriter, r *http.Request) {
	project, ok := s.projectFromPath(w, r)
	if !ok {
		return
	}
	tile, err := s.databaseStore.GetTileByCode(r.Context(), project.TorinoCode)
	if err != nil || tile == nil {
		log.Println("work order tile lookup error:", err)
		s.writeError(w, http.StatusBadRequest, "error generating work order")
		return
	}

	pdf, err := label.WorkOrder(project, tile)
	if err != nil {
		log.Println("work order render error:", err)
		s.writeError(w, http.StatusInternalServerError, "error generating work order")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="work_order.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// handleFinishProject accepts the installer's completion photo and marks the
// project done. Reached from the QR on the work order, so no staff login.
func (s *Server) handleFinishProject(w http.ResponseWriter, r *http.Request) {
	project, ok := s.projectFromPath(w, r)
	if !ok {
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "photo file is required (field 'photo')")
		return
	}
	defer file.Close()

	path, err := s.photos.Save(project.ID, header.Filename, file)
	if err != nil {
		log.Println("photo save error:", err)
		s.writeError(w, http.StatusInternalServerError, "photo upload failed")
		return
	}
	if err := s.databaseStore.FinishProject(r.Context(), project.ID, path); err != nil {
		log.Println("finish project error:", err)
		s.writeError(w, http.StatusInternalServerError, "failed to finish project")
		return
	}
	// A re-finish with a new file type leaves the old photo behind
	if project.PhotoURL != "" && project.PhotoURL != path {
		if err := s.photos.Remove(project.PhotoURL); err != nil {
			log.Println("old photo cleanup error:", err)
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) projectFromPath(w http.ResponseWriter, r *http.Request) (*store.Project, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		s.writeError(w, http.StatusBadRequest, "invalid project id")
		return nil, false
	}
	project, err := s.databaseStore.GetProject(r.Context(), id)
	if err != nil {
		log.Println("get project error:", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get project")
		return nil, false
	}
	if project == nil {
		s.writeError(w, http.StatusNotFound, "project not found")
		return nil, false
	}
	return project, true
}
