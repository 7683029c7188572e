package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"torino-tile-backend/internal/intake"
	"torino-tile-backend/internal/types"
)

// handleIntake feeds one already-transcribed utterance to the intake guide.
func (s *Server) handleIntake(w http.ResponseWriter, r *http.Request) {
	var req types.IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	sid := getOrCreateSessionID(r, w)

	res := s.guide.HandleUtterance(r.Context(), sid, req.Text)
	w.Header().Set("X-Session-Id", sid)
	s.writeJSON(w, http.StatusOK, intakeResponse(res, ""))
}

// handleVoice accepts raw audio, transcribes it, then runs the same intake
// path as the text endpoint and echoes the transcript.
func (s *Server) handleVoice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	sid := getOrCreateSessionID(r, w)
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "audio file is required (field 'file')")
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 180*time.Second)
	defer cancel()

	tr, err := s.stt.CreateTranscription(ctx, openai.AudioRequest{
		Model:    s.cfg.STTModel,
		Reader:   file,
		FilePath: header.Filename,
	})
	if err != nil {
		log.Println("transcription error:", err)
		s.writeError(w, http.StatusBadGateway, "transcription failed")
		return
	}
	transcribed := strings.TrimSpace(tr.Text)
	if transcribed == "" {
		s.writeError(w, http.StatusBadGateway, "empty transcription")
		return
	}

	res := s.guide.HandleUtterance(ctx, sid, transcribed)
	w.Header().Set("X-Session-Id", sid)
	s.writeJSON(w, http.StatusOK, intakeResponse(res, transcribed))
}

func intakeResponse(res intake.Result, transcript string) types.IntakeResponse {
	return types.IntakeResponse{
		Success:    res.Success,
		Message:    res.Display,
		Spoken:     res.Spoken,
		Reset:      res.Reset,
		ClientID:   res.ClientID,
		Transcript: transcript,
	}
}
