package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/aura-labs/aura-api/internal/auth"
	"github.com/aura-labs/aura-api/internal/config"
	"github.com/aura-labs/aura-api/internal/core"
	"github.com/aura-labs/aura-api/internal/store"
)

type fakeChat struct {
	lastUserID string
	history    []store.Message
}

func (f *fakeChat) SendMessage(_ context.Context, userID, message string) (string, error) {
	if message == "" {
		return "", core.ErrEmptyMessage
	}
	f.lastUserID = userID
	return "reply to: " + message, nil
}

func (f *fakeChat) History(_ context.Context, _ string) ([]store.Message, error) {
	if f.history == nil {
		return []store.Message{}, nil
	}
	return f.history, nil
}

type fakeDocs struct {
	byID map[string]*store.Document
}

func (f *fakeDocs) Upload(_ context.Context, up core.Upload) (*store.Document, error) {
	content, _ := io.ReadAll(up.Content)
	return &store.Document{
		ID:           "doc-1",
		Title:        up.Title,
		Description:  up.Description,
		OriginalName: up.OriginalName,
		FileSize:     int64(len(content)),
		FileType:     core.ClassifyFileType(up.OriginalName),
		Status:       store.StatusPending,
		UserID:       up.UserID,
	}, nil
}

func (f *fakeDocs) ByUser(_ context.Context, _ string) ([]store.Document, error) {
	return []store.Document{}, nil
}

func (f *fakeDocs) ByID(_ context.Context, id string) (*store.Document, error) {
	return f.byID[id], nil
}

func (f *fakeDocs) Verify(_ context.Context, id string) (*store.Document, error) {
	doc, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	doc.Status = store.StatusVerified
	doc.Verification = []byte(`{"verified":true,"score":88,"issues":[]}`)
	return doc, nil
}

type fakeUsers struct {
	byEmail map[string]*store.User
}

func (f *fakeUsers) CreateUser(_ context.Context, user *store.User) error {
	if user.ID == "" {
		user.ID = "user-1"
	}
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUsers) UserByEmail(_ context.Context, email string) (*store.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUsers) UserByID(_ context.Context, id string) (*store.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

type fakeProber struct{ err error }

func (f fakeProber) Probe(_ context.Context) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	return "Hello!", "gpt-3.5-turbo", nil
}

type fakeSearcher struct{}

func (fakeSearcher) Search(_ context.Context, _ string) ([]core.SearchResult, string, error) {
	return []core.SearchResult{{Title: "t", Link: "l", Snippet: "s"}}, "1", nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeChat, *fakeDocs) {
	t.Helper()
	cfg := &config.Config{
		GeminiAPIKey:   "gem-key",
		OpenAIAPIKey:   "oa-key",
		GoogleAPIKey:   "g-key",
		SearchEngineID: "cx-1",
		JWTSecret:      "test-secret",
	}
	chat := &fakeChat{}
	docs := &fakeDocs{byID: map[string]*store.Document{}}
	users := &fakeUsers{byEmail: map[string]*store.User{}}
	handler := NewAPIHandler(cfg, chat, docs, users, fakeProber{}, fakeSearcher{}, zap.NewNop())
	srv := httptest.NewServer(NewRouter(handler, t.TempDir()))
	t.Cleanup(srv.Close)
	return srv, chat, docs
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("response was not a JSON envelope: %v", err)
	}
	return env
}

func TestSendMessageEndpoint(t *testing.T) {
	srv, chat, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/chat/message", "application/json",
		strings.NewReader(`{"message":"hello","userId":"u7"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	if !env.Success {
		t.Fatal("expected success envelope")
	}
	data := env.Data.(map[string]any)
	if data["message"] != "reply to: hello" {
		t.Errorf("data.message = %v", data["message"])
	}
	if chat.lastUserID != "u7" {
		t.Errorf("userId passed through = %q, want u7", chat.lastUserID)
	}
}

func TestSendMessageEndpointEmptyMessage(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/chat/message", "application/json",
		strings.NewReader(`{"userId":"u7"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	if env.Success || env.Error == "" {
		t.Errorf("want failure envelope with error message, got %+v", env)
	}
}

func TestChatHistoryEndpointEmpty(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/chat/history?userId=nobody")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	data := env.Data.(map[string]any)
	messages, ok := data["messages"].([]any)
	if !ok {
		t.Fatalf("data.messages is %T, want an array", data["messages"])
	}
	if len(messages) != 0 {
		t.Errorf("got %d messages, want 0", len(messages))
	}
}

func TestCredentialEchoEndpoints(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/chat/google-api")
	if err != nil {
		t.Fatal(err)
	}
	env := decodeEnvelope(t, resp)
	data := env.Data.(map[string]any)
	if data["apiKey"] != "g-key" || data["searchEngineId"] != "cx-1" {
		t.Errorf("google-api data = %v", data)
	}
}

func TestUploadDocumentEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "pan.pdf")
	fw.Write([]byte("%PDF-1.4"))
	mw.WriteField("title", "PAN card")
	mw.WriteField("description", "front")
	mw.WriteField("userId", "u1")
	mw.Close()

	resp, err := http.Post(srv.URL+"/api/documents", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	data := env.Data.(map[string]any)
	if data["file_type"] != store.FileTypePDF {
		t.Errorf("file_type = %v, want pdf", data["file_type"])
	}
	if data["status"] != store.StatusPending {
		t.Errorf("status = %v, want pending", data["status"])
	}
}

func TestUploadDocumentEndpointMissingFile(t *testing.T) {
	srv, _, _ := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("title", "no file")
	mw.WriteField("description", "missing")
	mw.Close()

	resp, err := http.Post(srv.URL+"/api/documents", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUploadDocumentEndpointTooLarge(t *testing.T) {
	srv, _, _ := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "huge.pdf")
	fw.Write(bytes.Repeat([]byte("x"), 11<<20)) // just over the 10MB cap
	mw.WriteField("title", "too big")
	mw.WriteField("description", "oversized upload")
	mw.Close()

	resp, err := http.Post(srv.URL+"/api/documents", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	if env.Success || env.Error == "" {
		t.Errorf("want failure envelope, got %+v", env)
	}
}

func TestGetDocumentEndpointNotFound(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/documents/missing")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestVerifyDocumentEndpoint(t *testing.T) {
	srv, _, docs := newTestServer(t)
	docs.byID["d1"] = &store.Document{ID: "d1", Status: store.StatusPending, UserID: "u1"}

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/documents/d1/verify", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	data := env.Data.(map[string]any)
	if data["status"] != store.StatusVerified {
		t.Errorf("status = %v, want verified", data["status"])
	}

	// The result blob the verify run just attached must come back with it.
	verification, ok := data["verification"].(map[string]any)
	if !ok {
		t.Fatalf("data.verification is %T, want an object", data["verification"])
	}
	if verification["verified"] != true {
		t.Errorf("verification.verified = %v, want true", verification["verified"])
	}
	if verification["score"] != float64(88) {
		t.Errorf("verification.score = %v, want 88", verification["score"])
	}
}

func TestRegisterAndLoginEndpoints(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/users/register", "application/json",
		strings.NewReader(`{"name":"Asha","email":"asha@example.com","password":"pw"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	data := env.Data.(map[string]any)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("register must return a token")
	}
	if sub, err := auth.ValidateJWT("test-secret", token); err != nil || sub == "" {
		t.Errorf("register token invalid: sub=%q err=%v", sub, err)
	}

	resp, err = http.Post(srv.URL+"/api/users/login", "application/json",
		strings.NewReader(`{"email":"asha@example.com","password":"pw"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/api/users/login", "application/json",
		strings.NewReader(`{"email":"asha@example.com","password":"wrong"}`))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want 401", resp.StatusCode)
	}
}

func TestHealthAndRoot(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "AURA API is running" {
		t.Errorf("root body = %q", body)
	}
}

func TestTestOpenAIEndpointFailure(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s"}
	handler := NewAPIHandler(cfg, &fakeChat{}, &fakeDocs{byID: map[string]*store.Document{}},
		&fakeUsers{byEmail: map[string]*store.User{}}, fakeProber{err: errors.New("quota exceeded")},
		fakeSearcher{}, zap.NewNop())
	srv := httptest.NewServer(NewRouter(handler, t.TempDir()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/chat/test-openai")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
	env := decodeEnvelope(t, resp)
	if env.Success || !strings.Contains(env.Error, "quota exceeded") {
		t.Errorf("probe failure envelope = %+v", env)
	}
}
