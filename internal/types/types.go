package types

type IntakeRequest struct {
	Text string `json:"text"`
}

// IntakeResponse is the payload returned by both the text and voice intake
// endpoints. Spoken is intended for audio playback on the frontend; Message
// is shown in the UI log.
type IntakeResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Spoken     string `json:"tts,omitempty"`
	Reset      bool   `json:"reset,omitempty"`
	ClientID   int64  `json:"client_id,omitempty"`
	Transcript string `json:"transcript,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TileRequest struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Supplier    string  `json:"supplier"`
	SqftPerBox  float64 `json:"sqft_per_box"`
	Style       string  `json:"style"`
	Size        string  `json:"size"`
	Quantity    int     `json:"quantity"`
	Image       string  `json:"image,omitempty"`
	ColorGroup  string  `json:"color_group,omitempty"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

type ProjectRequest struct {
	TorinoCode   string  `json:"tile_code"`
	ClientID     int64   `json:"client_id,omitempty"`
	ClientName   string  `json:"client_name"`
	Address      string  `json:"address"`
	SqFt         float64 `json:"sq_ft"`
	InstallDate  string  `json:"install_date"`
	InstallerFee float64 `json:"installer_fee"`
	Budget       float64 `json:"budget,omitempty"`
	Schedule     string  `json:"schedule,omitempty"`
	Notes        string  `json:"notes,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
