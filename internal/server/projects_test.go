package server

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"torino-tile-backend/internal/store"
)

// stubDataStore keeps one project in memory; methods the finish flow does not
// touch come from the embedded nil interface and panic if called.
type stubDataStore struct {
	dataStore
	project      *store.Project
	finishCalls  int
	finishedWith string
}

func (s *stubDataStore) GetProject(_ context.Context, id int64) (*store.Project, error) {
	if s.project != nil && s.project.ID == id {
		p := *s.project
		return &p, nil
	}
	return nil, nil
}

func (s *stubDataStore) FinishProject(_ context.Context, id int64, photoURL string) error {
	s.finishCalls++
	s.finishedWith = photoURL
	s.project.Status = "Completed"
	s.project.PhotoURL = photoURL
	return nil
}

func newFinishTestServer(t *testing.T, project *store.Project) (*Server, *stubDataStore) {
	t.Helper()
	stub := &stubDataStore{project: project}
	s := &Server{
		router:        chi.NewRouter(),
		databaseStore: stub,
		photos:        store.NewPhotoStore(t.TempDir()),
	}
	s.router.Post("/api/projects/{id}/finish", s.handleFinishProject)
	return s, stub
}

func postFinish(t *testing.T, s *Server, url, filename string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = io.Copy(fw, strings.NewReader("not-really-a-photo"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestFinishProjectMarksCompleted(t *testing.T) {
	s, stub := newFinishTestServer(t, &store.Project{ID: 7, TorinoCode: "Orzo-0001", Status: "Scheduled"})

	rec := postFinish(t, s, "/api/projects/7/finish", "after.jpg")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, stub.finishCalls)
	require.Equal(t, "Completed", stub.project.Status)
	require.NotEmpty(t, stub.finishedWith)

	// The uploaded photo landed on disk at the recorded path
	data, err := os.ReadFile(stub.finishedWith)
	require.NoError(t, err)
	require.Equal(t, "not-really-a-photo", string(data))
}

func TestFinishProjectReplacesOldPhoto(t *testing.T) {
	s, stub := newFinishTestServer(t, &store.Project{ID: 7, TorinoCode: "Orzo-0001", Status: "Scheduled"})

	rec := postFinish(t, s, "/api/projects/7/finish", "first.jpg")
	require.Equal(t, http.StatusOK, rec.Code)
	oldPath := stub.finishedWith

	rec = postFinish(t, s, "/api/projects/7/finish", "second.png")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEqual(t, oldPath, stub.finishedWith)

	_, err := os.Stat(stub.finishedWith)
	require.NoError(t, err)
	_, err = os.Stat(oldPath)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFinishProjectUnknownID(t *testing.T) {
	s, stub := newFinishTestServer(t, &store.Project{ID: 7})

	rec := postFinish(t, s, "/api/projects/99/finish", "after.jpg")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Zero(t, stub.finishCalls)
}

func TestFinishProjectRequiresPhotoField(t *testing.T) {
	s, stub := newFinishTestServer(t, &store.Project{ID: 7, Status: "Scheduled"})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("note", "no file here"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/projects/7/finish", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Scheduled", stub.project.Status)
}
