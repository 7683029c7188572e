package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/crypto/bcrypt"

	"torino-tile-backend/internal/config"
	"torino-tile-backend/internal/db"
	"torino-tile-backend/internal/intake"
	"torino-tile-backend/internal/store"
	"torino-tile-backend/internal/types"
)

// dataStore is the slice of store.DatabaseStore the handlers use.
type dataStore interface {
	GetClient(ctx context.Context, id int64) (*store.Client, error)
	ListClients(ctx context.Context) ([]store.Client, error)
	CreateTile(ctx context.Context, t store.Tile) (*store.Tile, error)
	GetTileByCode(ctx context.Context, torinoCode string) (*store.Tile, error)
	ListTiles(ctx context.Context, page, perPage int, colorGroup string) ([]store.Tile, error)
	UpdateTileQuantity(ctx context.Context, torinoCode string, quantity int) error
	CreateProject(ctx context.Context, p store.Project) (int64, error)
	GetProject(ctx context.Context, id int64) (*store.Project, error)
	ListProjects(ctx context.Context) ([]store.Project, error)
	FinishProject(ctx context.Context, id int64, photoURL string) error
	GetUserPassword(ctx context.Context, username string) (string, error)
}

type Server struct {
	router        *chi.Mux
	cfg           config.Config
	memory        *store.MemoryStore
	database      *db.DB
	databaseStore dataStore
	photos        *store.PhotoStore
	stt           *openai.Client
	guide         *intake.Guide
}

func NewServer(cfg config.Config) (*Server, error) {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Session-Id"},
		AllowCredentials: true, // Enable credentials for cookies
		MaxAge:           300,
	}))

	database, err := db.New(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	log.Println("database connection established")

	if err := database.RunMigrations("./migrations"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("database migrations completed")

	databaseStore := store.NewDatabaseStore(database)

	// Seed the staff login so the showroom works out of the box
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	if err := databaseStore.SeedUser(context.Background(), cfg.AdminUsername, string(hash)); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to seed admin user: %w", err)
	}

	ms := store.NewMemoryStore(cfg.SessionTTL)

	prompts, err := intake.LoadPromptSet(cfg.IntakePromptsFile)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to load intake prompts: %w", err)
	}
	guide, err := intake.NewGuide(ms, databaseStore, ms, prompts, cfg.IntakeRequireTrigger)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create intake guide: %w", err)
	}

	s := &Server{
		router:        r,
		cfg:           cfg,
		memory:        ms,
		database:      database,
		databaseStore: databaseStore,
		photos:        store.NewPhotoStore(cfg.PhotoDir),
		stt:           openai.NewClient(cfg.OpenAIAPIKey),
		guide:         guide,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/api/login", s.handleLogin)
	s.router.Post("/api/logout", s.handleLogout)
	// Voice client intake; the guide enforces staff auth itself
	s.router.Post("/api/intake", s.handleIntake)
	s.router.Post("/api/voice", s.handleVoice)
	// Showroom browsing and sticker printing are open
	s.router.Get("/api/tiles", s.handleListTiles)
	s.router.Get("/api/tiles/{code}", s.handleGetTile)
	s.router.Get("/api/tiles/{code}/stickers", s.handleStickers)
	// Installers reach this from the work-order QR, no login
	s.router.Post("/api/projects/{id}/finish", s.handleFinishProject)

	s.router.Group(func(r chi.Router) {
		r.Use(s.requireStaff)
		r.Post("/api/tiles", s.handleCreateTile)
		r.Post("/api/tiles/{code}/quantity", s.handleUpdateQuantity)
		r.Get("/api/clients", s.handleListClients)
		r.Get("/api/clients/{id}", s.handleGetClient)
		r.Post("/api/projects", s.handleCreateProject)
		r.Get("/api/projects", s.handleListProjects)
		r.Get("/api/projects/{id}", s.handleGetProject)
		r.Get("/api/projects/{id}/work_order", s.handleWorkOrder)
	})
}

func (s *Server) Router() http.Handler { return s.router }

// Close releases the server's database connection.
func (s *Server) Close() error {
	if s.database != nil {
		return s.database.Close()
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if err := s.database.HealthCheck(); err != nil {
		log.Println("health check: database unreachable:", err)
		status = "degraded"
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

// requireStaff rejects requests whose session has not passed staff login.
func (s *Server) requireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := getSessionID(r)
		if sid == "" || !s.memory.IsStaffAuthenticated(sid) {
			s.writeError(w, http.StatusUnauthorized, "login required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
}

func newSessionID() string {
	return uuid.NewString()
}

// getSessionID retrieves the session ID from cookie or query parameter/header
func getSessionID(r *http.Request) string {
	// Try cookie first
	if cookie, err := GetSessionCookie(r); err == nil && cookie != "" {
		return cookie
	}
	// Fall back to header
	if sid := r.Header.Get("X-Session-Id"); sid != "" {
		return sid
	}
	// Fall back to query parameter
	if sid := r.URL.Query().Get("sessionId"); sid != "" {
		return sid
	}
	return ""
}

// getOrCreateSessionID gets existing session ID or creates a new one, setting the cookie
func getOrCreateSessionID(r *http.Request, w http.ResponseWriter) string {
	sid := getSessionID(r)
	if sid == "" {
		sid = newSessionID()
		log.Printf("[session] creating new session: %s for endpoint: %s", sid, r.URL.Path)
		SetSessionCookie(w, sid)
	}
	return sid
}
