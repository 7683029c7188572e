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

func (s *Server) handleListTiles(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	colorGroup := r.URL.Query().Get("color_group")

	tiles, err := s.databaseStore.ListTiles(r.Context(), page, perPage, colorGroup)
	if err != nil {
		log.Println("list tiles error:", err)
		s.writeError(w, http.StatusInternalServerError, "failed to list tiles")
		return
	}
	if tiles == nil {
		tiles = []store.Tile{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"tiles": tiles})
}

func (s *Server) handleGetTile(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	tile, err := s.databaseStore.GetTileByCode(r.Context(), code)
	if err != nil {
		log.Println("get tile error:", err)
		s.writeError(w, http.StatusInternalServerError, "failed to get tile")
		return
	}
	if tile == nil {
		s.writeError(w, http.StatusNotFound, "tile not found")
		return
	}
	s.writeJSON(w, http.StatusOK, tile)
}

func (s *Server) handleCreateTile(w http.ResponseWriter, r *http.Request) {
	var req types.TileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Supplier) == "" {
		s.writeError(w, http.StatusBadRequest, "name and supplier are required")
		return
	}
	if req.Price <= 0 || req.SqftPerBox <= 0 {
		s.writeError(w, http.StatusBadRequest, "price and sqft_per_box must be positive")
		return
	}

	tile, err := s.databaseStore.CreateTile(r.Context(), store.Tile{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Supplier:    req.Supplier,
		SqftPerBox:  req.SqftPerBox,
		Style:       req.Style,
		Size:        req.Size,
		Quantity:    req.Quantity,
		Image:       req.Image,
		ColorGroup:  req.ColorGroup,
	})
	if err != nil {
		log.Println("create tile error:", err)
		s.writeError(w, http.StatusBadRequest, "failed to create tile")
		return
	}
	s.writeJSON(w, http.StatusCreated, tile)
}

func (s *Server) handleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var req types.QuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Quantity < 0 {
		s.writeError(w, http.StatusBadRequest, "quantity must not be negative")
		return
	}
	if err := s.databaseStore.UpdateTileQuantity(r.Context(), code, req.Quantity); err != nil {
		log.Println("update quantity error:", err)
		s.writeError(w, http.StatusNotFound, "failed to update quantity")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStickers(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	tile, err := s.databaseStore.GetTileByCode(r.Context(), code)
	if err != nil {
		log.Println("stickers tile lookup error:", err)
		s.writeError(w, http.StatusInternalServerError, "sticker generation failed")
		return
	}
	if tile == nil {
		s.writeError(w, http.StatusNotFound, "tile not found")
		return
	}

	pdf, err := label.StickerSheet(tile)
	if err != nil {
		log.Println("sticker render error:", err)
		s.writeError(w, http.StatusInternalServerError, "sticker generation failed")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="stickers.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
