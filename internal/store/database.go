package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"torino-tile-backend/internal/db"
)

// SupplierCodes maps each supplier to the prefix used when deriving torino
// codes for their tiles.
var SupplierCodes = map[string]string{
	"Ames":         "Agri",
	"Ceratec":      "Sienna",
	"C&S":          "Capri",
	"Daltile":      "Vetro",
	"Midgley West": "Milano",
	"Olympia":      "Orzo",
	"Julian":       "Roma",
	"Sarana":       "Sassa",
}

// TorinoCode derives the showroom code for a supplier's next tile from the
// number of tiles that supplier already has, e.g. 11 existing Daltile tiles
// yield "Vetro-0012".
func TorinoCode(supplier string, existing int) (string, error) {
	prefix, ok := SupplierCodes[supplier]
	if !ok {
		return "", fmt.Errorf("unknown supplier: %s", supplier)
	}
	return fmt.Sprintf("%s-%04d", prefix, existing+1), nil
}

// DatabaseStore persists tiles, clients, projects, and staff users in PostgreSQL.
type DatabaseStore struct {
	db *db.DB
}

// NewDatabaseStore creates a new database store
func NewDatabaseStore(database *db.DB) *DatabaseStore {
	return &DatabaseStore{db: database}
}

// Client is a customer record. Created once, either by the voice intake flow
// or straight from the admin UI; edits are out of scope for this backend.
type Client struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Tile is one inventory item on the showroom floor.
type Tile struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	Supplier    string    `json:"supplier"`
	SqftPerBox  float64   `json:"sqft_per_box"`
	Style       string    `json:"style"`
	Size        string    `json:"size"`
	TorinoCode  string    `json:"torino_code"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	Image       string    `json:"image,omitempty"`
	ColorGroup  string    `json:"color_group"`
}

// withDefaults fills the fields the showroom form leaves optional.
func (t Tile) withDefaults() Tile {
	if t.ColorGroup == "" {
		t.ColorGroup = "White"
	}
	return t
}

// Project is one installation job for a tile at a client address.
type Project struct {
	ID           int64     `json:"id"`
	TorinoCode   string    `json:"torino_code"`
	ClientID     int64     `json:"client_id,omitempty"`
	ClientName   string    `json:"client_name"`
	Address      string    `json:"address"`
	SqFt         float64   `json:"sq_ft"`
	InstallDate  string    `json:"install_date"`
	InstallerFee float64   `json:"installer_fee"`
	Budget       float64   `json:"budget,omitempty"`
	Schedule     string    `json:"schedule,omitempty"`
	Status       string    `json:"status"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Clients

// CreateClient inserts a client and returns its database-assigned id. This is
// the commit side of the intake dialogue.
func (ds *DatabaseStore) CreateClient(ctx context.Context, fullName, address, phone, email string) (int64, error) {
	if strings.TrimSpace(fullName) == "" {
		return 0, fmt.Errorf("client name is required")
	}

	var id int64
	query := `
		INSERT INTO clients (name, address, phone, email, notes, created_at)
		VALUES ($1, $2, $3, $4, '', NOW())
		RETURNING id
	`
	if err := ds.db.QueryRowContext(ctx, query, fullName, address, phone, email).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to create client: %w", err)
	}
	return id, nil
}

func (ds *DatabaseStore) GetClient(ctx context.Context, id int64) (*Client, error) {
	var c Client
	query := `
		SELECT id, name, COALESCE(address, ''), COALESCE(phone, ''), COALESCE(email, ''), COALESCE(notes, ''), created_at
		FROM clients
		WHERE id = $1
	`
	err := ds.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &c, nil
}

func (ds *DatabaseStore) ListClients(ctx context.Context) ([]Client, error) {
	query := `
		SELECT id, name, COALESCE(address, ''), COALESCE(phone, ''), COALESCE(email, ''), COALESCE(notes, ''), created_at
		FROM clients
		ORDER BY created_at DESC
	`
	rows, err := ds.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// Tiles

// CreateTile inserts a tile, deriving its torino code from the supplier's
// prefix and a per-supplier running number (e.g. "Vetro-0012" for Daltile).
func (ds *DatabaseStore) CreateTile(ctx context.Context, t Tile) (*Tile, error) {
	t = t.withDefaults()
	if _, ok := SupplierCodes[t.Supplier]; !ok {
		return nil, fmt.Errorf("unknown supplier: %s", t.Supplier)
	}

	var count int
	if err := ds.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tiles WHERE supplier = $1", t.Supplier,
	).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count supplier tiles: %w", err)
	}
	code, err := TorinoCode(t.Supplier, count)
	if err != nil {
		return nil, err
	}
	t.TorinoCode = code

	query := `
		INSERT INTO tiles (name, price, description, supplier, sqft_per_box, style, size, torino_code, quantity, created_at, image, color_group)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), $10, $11)
		RETURNING id, created_at
	`
	err = ds.db.QueryRowContext(ctx, query,
		t.Name, t.Price, t.Description, t.Supplier, t.SqftPerBox, t.Style, t.Size,
		t.TorinoCode, t.Quantity, t.Image, t.ColorGroup,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create tile: %w", err)
	}
	return &t, nil
}

func (ds *DatabaseStore) GetTileByCode(ctx context.Context, torinoCode string) (*Tile, error) {
	var t Tile
	query := `
		SELECT id, name, price, COALESCE(description, ''), supplier, sqft_per_box, style, size, torino_code, quantity, created_at, COALESCE(image, ''), COALESCE(color_group, 'White')
		FROM tiles
		WHERE torino_code = $1
	`
	err := ds.db.QueryRowContext(ctx, query, torinoCode).Scan(
		&t.ID, &t.Name, &t.Price, &t.Description, &t.Supplier, &t.SqftPerBox,
		&t.Style, &t.Size, &t.TorinoCode, &t.Quantity, &t.CreatedAt, &t.Image, &t.ColorGroup,
	)
	if err == sql.ErrNoRows {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tile: %w", err)
	}
	return &t, nil
}

// ListTiles returns one page of tiles, newest first, optionally filtered by
// color group.
func (ds *DatabaseStore) ListTiles(ctx context.Context, page, perPage int, colorGroup string) ([]Tile, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 9
	}
	offset := (page - 1) * perPage

	query := `
		SELECT id, name, price, COALESCE(description, ''), supplier, sqft_per_box, style, size, torino_code, quantity, created_at, COALESCE(image, ''), COALESCE(color_group, 'White')
		FROM tiles
	`
	args := []any{}
	if colorGroup != "" {
		query += " WHERE color_group = $1"
		args = append(args, colorGroup)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, perPage, offset)

	rows, err := ds.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tiles: %w", err)
	}
	defer rows.Close()

	var tiles []Tile
	for rows.Next() {
		var t Tile
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Price, &t.Description, &t.Supplier, &t.SqftPerBox,
			&t.Style, &t.Size, &t.TorinoCode, &t.Quantity, &t.CreatedAt, &t.Image, &t.ColorGroup,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tile: %w", err)
		}
		tiles = append(tiles, t)
	}
	return tiles, rows.Err()
}

func (ds *DatabaseStore) UpdateTileQuantity(ctx context.Context, torinoCode string, quantity int) error {
	res, err := ds.db.ExecContext(ctx,
		"UPDATE tiles SET quantity = $1 WHERE torino_code = $2", quantity, torinoCode,
	)
	if err != nil {
		return fmt.Errorf("failed to update tile quantity: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("tile not found: %s", torinoCode)
	}
	return nil
}

// Projects

func (ds *DatabaseStore) CreateProject(ctx context.Context, p Project) (int64, error) {
	if strings.TrimSpace(p.TorinoCode) == "" {
		return 0, fmt.Errorf("torino_code is required")
	}
	if p.Status == "" {
		p.Status = "Scheduled"
	}

	var clientID any
	if p.ClientID > 0 {
		clientID = p.ClientID
	}

	var id int64
	query := `
		INSERT INTO projects (torino_code, client_id, client_name, address, sq_ft, install_date, installer_fee, budget, schedule, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING id
	`
	err := ds.db.QueryRowContext(ctx, query,
		p.TorinoCode, clientID, p.ClientName, p.Address, p.SqFt, p.InstallDate,
		p.InstallerFee, p.Budget, p.Schedule, p.Status, p.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create project: %w", err)
	}
	return id, nil
}

func (ds *DatabaseStore) GetProject(ctx context.Context, id int64) (*Project, error) {
	var p Project
	query := `
		SELECT id, torino_code, COALESCE(client_id, 0), COALESCE(client_name, ''), COALESCE(address, ''), COALESCE(sq_ft, 0), COALESCE(install_date, ''), COALESCE(installer_fee, 0), COALESCE(budget, 0), COALESCE(schedule, ''), COALESCE(status, 'Scheduled'), COALESCE(photo_url, ''), COALESCE(notes, ''), created_at
		FROM projects
		WHERE id = $1
	`
	err := ds.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.TorinoCode, &p.ClientID, &p.ClientName, &p.Address, &p.SqFt,
		&p.InstallDate, &p.InstallerFee, &p.Budget, &p.Schedule, &p.Status,
		&p.PhotoURL, &p.Notes, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // Not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &p, nil
}

func (ds *DatabaseStore) ListProjects(ctx context.Context) ([]Project, error) {
	query := `
		SELECT id, torino_code, COALESCE(client_id, 0), COALESCE(client_name, ''), COALESCE(address, ''), COALESCE(sq_ft, 0), COALESCE(install_date, ''), COALESCE(installer_fee, 0), COALESCE(budget, 0), COALESCE(schedule, ''), COALESCE(status, 'Scheduled'), COALESCE(photo_url, ''), COALESCE(notes, ''), created_at
		FROM projects
		ORDER BY created_at DESC
	`
	rows, err := ds.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(
			&p.ID, &p.TorinoCode, &p.ClientID, &p.ClientName, &p.Address, &p.SqFt,
			&p.InstallDate, &p.InstallerFee, &p.Budget, &p.Schedule, &p.Status,
			&p.PhotoURL, &p.Notes, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// FinishProject marks a project completed and records the installer photo.
func (ds *DatabaseStore) FinishProject(ctx context.Context, id int64, photoURL string) error {
	res, err := ds.db.ExecContext(ctx,
		"UPDATE projects SET status = 'Completed', photo_url = $1 WHERE id = $2", photoURL, id,
	)
	if err != nil {
		return fmt.Errorf("failed to finish project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("project not found: %d", id)
	}
	return nil
}

// Users

// SeedUser inserts a staff user if the username is not already taken.
func (ds *DatabaseStore) SeedUser(ctx context.Context, username, passwordHash string) error {
	if username == "" || passwordHash == "" {
		return fmt.Errorf("username and password hash are required")
	}
	_, err := ds.db.ExecContext(ctx,
		"INSERT INTO users (username, password) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING",
		username, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}
	return nil
}

// GetUserPassword returns the stored password hash, or "" when the user does
// not exist.
func (ds *DatabaseStore) GetUserPassword(ctx context.Context, username string) (string, error) {
	var hash string
	err := ds.db.QueryRowContext(ctx,
		"SELECT password FROM users WHERE username = $1", username,
	).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil // Not found
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	return hash, nil
}
