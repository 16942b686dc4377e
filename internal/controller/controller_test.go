package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"healthcare-chatbot-be/internal/dto"
	"healthcare-chatbot-be/internal/entity"
	"healthcare-chatbot-be/internal/pkg/serverutils"
	"healthcare-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fakes

type fakeAuthService struct {
	register     func(*dto.RegisterRequest) (*dto.TokenResponse, error)
	login        func(*dto.LoginRequest) (*dto.TokenResponse, error)
	authenticate func(string) (*entity.User, error)
}

func (f *fakeAuthService) Register(_ context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	return f.register(req)
}

func (f *fakeAuthService) Login(_ context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	return f.login(req)
}

func (f *fakeAuthService) Authenticate(_ context.Context, raw string) (*entity.User, error) {
	return f.authenticate(raw)
}

func (f *fakeAuthService) GetProfile(_ context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	return &dto.UserResponse{Id: userId, Email: "pat@example.com", ExistingConditions: []string{}}, nil
}

type fakeChatbotService struct {
	send func(*entity.User, *dto.SendMessageRequest) (*dto.ChatMessageResponse, error)
	del  func(uuid.UUID, uuid.UUID) error
}

func (f *fakeChatbotService) SendMessage(_ context.Context, user *entity.User, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error) {
	return f.send(user, req)
}

func (f *fakeChatbotService) GetAllSessions(context.Context, uuid.UUID) ([]*dto.ChatSessionResponse, error) {
	return []*dto.ChatSessionResponse{}, nil
}

func (f *fakeChatbotService) GetSessionMessages(context.Context, uuid.UUID, uuid.UUID) ([]*dto.ChatMessageResponse, error) {
	return nil, service.ErrSessionNotFound
}

func (f *fakeChatbotService) DeleteSession(_ context.Context, userId, sessionId uuid.UUID) error {
	return f.del(userId, sessionId)
}

type fakeAppointmentService struct {
	book func(*dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
}

func (f *fakeAppointmentService) Book(_ context.Context, _ *entity.User, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	return f.book(req)
}

func (f *fakeAppointmentService) List(context.Context, uuid.UUID) ([]*dto.AppointmentResponse, error) {
	return []*dto.AppointmentResponse{}, nil
}

func (f *fakeAppointmentService) Cancel(context.Context, *entity.User, uuid.UUID) (*dto.AppointmentResponse, error) {
	return nil, service.ErrAppointmentNotFound
}

type fakeVoiceService struct {
	transcribe func(body []byte, filename string) (*dto.STTResponse, error)
}

func (f *fakeVoiceService) Transcribe(_ context.Context, audio io.Reader, filename string) (*dto.STTResponse, error) {
	body, _ := io.ReadAll(audio)
	return f.transcribe(body, filename)
}

func (f *fakeVoiceService) Synthesize(_ context.Context, req *dto.TTSRequest) (*dto.TTSResponse, error) {
	return nil, fmt.Errorf("%w: %v", service.ErrSynthesisFailed, errors.New("quota exceeded"))
}

func (f *fakeVoiceService) ListVoices() *dto.VoiceListResponse {
	return &dto.VoiceListResponse{Voices: []dto.VoiceResponse{{VoiceId: "nova", Name: "Nova"}}}
}

// Helpers

var testUser = &entity.User{Id: uuid.New(), Email: "pat@example.com", FullName: "Pat Lee"}

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	return app
}

func fakeAuth(ctx *fiber.Ctx) error {
	ctx.Locals(serverutils.LocalUserID, testUser.Id.String())
	ctx.Locals(serverutils.LocalUser, testUser)
	return ctx.Next()
}

func passThrough(ctx *fiber.Ctx) error { return ctx.Next() }

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, serverutils.BaseResponse[json.RawMessage]) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return send(t, app, req)
}

func send(t *testing.T, app *fiber.App, req *http.Request) (int, serverutils.BaseResponse[json.RawMessage]) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out serverutils.BaseResponse[json.RawMessage]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

// Tests

func TestHandleError(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{service.ErrDuplicateEmail, fiber.StatusBadRequest},
		{service.ErrSlotUnavailable, fiber.StatusBadRequest},
		{service.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{service.ErrTokenExpired, fiber.StatusUnauthorized},
		{service.ErrSessionNotFound, fiber.StatusNotFound},
		{service.ErrDoctorNotFound, fiber.StatusNotFound},
		{service.ErrAppointmentNotFound, fiber.StatusNotFound},
		{fmt.Errorf("%w: boom", service.ErrTranscriptionFailed), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			var ferr *fiber.Error
			require.ErrorAs(t, handleError(tt.err), &ferr)
			assert.Equal(t, tt.code, ferr.Code)
			assert.Equal(t, tt.err.Error(), ferr.Message)
		})
	}

	plain := errors.New("connection refused")
	assert.Same(t, plain, handleError(plain))
}

func TestAuthController(t *testing.T) {
	svc := &fakeAuthService{
		register: func(req *dto.RegisterRequest) (*dto.TokenResponse, error) {
			if req.Email == "taken@example.com" {
				return nil, service.ErrDuplicateEmail
			}
			return &dto.TokenResponse{AccessToken: "tok", TokenType: "bearer"}, nil
		},
		login: func(req *dto.LoginRequest) (*dto.TokenResponse, error) {
			return nil, service.ErrInvalidCredentials
		},
	}
	app := newTestApp()
	NewAuthController(svc).RegisterRoutes(app.Group("/api"), passThrough, fakeAuth)

	t.Run("register", func(t *testing.T) {
		code, body := doJSON(t, app, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
			Email: "new@example.com", Password: "secret1", FullName: "New Person",
		})
		assert.Equal(t, fiber.StatusOK, code)
		assert.True(t, body.Success)
		assert.Contains(t, string(body.Data), `"access_token":"tok"`)
	})

	t.Run("register validation", func(t *testing.T) {
		code, body := doJSON(t, app, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
			Email: "not-an-email", Password: "123", FullName: "X",
		})
		assert.Equal(t, fiber.StatusBadRequest, code)
		assert.False(t, body.Success)
		assert.Contains(t, body.Message, "password")
		assert.Contains(t, body.Message, "email")
	})

	t.Run("register duplicate", func(t *testing.T) {
		code, body := doJSON(t, app, http.MethodPost, "/api/auth/register", dto.RegisterRequest{
			Email: "taken@example.com", Password: "secret1", FullName: "Dup",
		})
		assert.Equal(t, fiber.StatusBadRequest, code)
		assert.Equal(t, "Email already registered", body.Message)
	})

	t.Run("login mismatch", func(t *testing.T) {
		code, body := doJSON(t, app, http.MethodPost, "/api/auth/login", dto.LoginRequest{
			Email: "pat@example.com", Password: "wrong",
		})
		assert.Equal(t, fiber.StatusUnauthorized, code)
		assert.Equal(t, "Invalid email or password", body.Message)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		code, body := send(t, app, req)
		assert.Equal(t, fiber.StatusBadRequest, code)
		assert.Equal(t, "Invalid request body", body.Message)
	})

	t.Run("me", func(t *testing.T) {
		code, body := doJSON(t, app, http.MethodGet, "/api/auth/me", nil)
		assert.Equal(t, fiber.StatusOK, code)
		assert.Contains(t, string(body.Data), testUser.Id.String())
	})
}

func TestTokenAuthenticator(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "expired", err: service.ErrTokenExpired, wantCode: fiber.StatusUnauthorized, wantMsg: "Token expired"},
		{name: "invalid", err: service.ErrTokenInvalid, wantCode: fiber.StatusUnauthorized, wantMsg: "Invalid token"},
		{name: "user gone", err: service.ErrUserNotFound, wantCode: fiber.StatusUnauthorized, wantMsg: "User not found"},
		{name: "store down", err: errors.New("dial tcp: refused"), wantCode: fiber.StatusInternalServerError, wantMsg: "internal error"},
		{name: "valid", wantCode: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeAuthService{authenticate: func(string) (*entity.User, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return testUser, nil
			}}
			app := newTestApp()
			app.Get("/me", serverutils.JwtMiddleware(NewTokenAuthenticator(svc)), func(ctx *fiber.Ctx) error {
				user, err := currentUser(ctx)
				if err != nil {
					return err
				}
				return ctx.JSON(serverutils.SuccessResponse("ok", user.Email))
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", "Bearer whatever")
			code, body := send(t, app, req)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, body.Message)
			}
		})
	}
}

func TestChatbotController(t *testing.T) {
	sessionId := uuid.New()
	svc := &fakeChatbotService{
		send: func(user *entity.User, req *dto.SendMessageRequest) (*dto.ChatMessageResponse, error) {
			if req.SessionId != nil {
				return nil, service.ErrSessionNotFound
			}
			return &dto.ChatMessageResponse{SessionId: sessionId, Role: "assistant", Content: "Rest up, " + user.FullName}, nil
		},
		del: func(userId, id uuid.UUID) error {
			if id != sessionId {
				return service.ErrSessionNotFound
			}
			return nil
		},
	}
	app := newTestApp()
	NewChatbotController(svc).RegisterRoutes(app.Group("/api"), fakeAuth)

	code, body := doJSON(t, app, http.MethodPost, "/api/chat/message", map[string]string{"message": "headache"})
	assert.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, string(body.Data), "Rest up, Pat Lee")

	code, _ = doJSON(t, app, http.MethodPost, "/api/chat/message", map[string]string{"message": ""})
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, body = doJSON(t, app, http.MethodPost, "/api/chat/message", map[string]string{"message": "hi", "session_id": uuid.NewString()})
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "Session not found", body.Message)

	code, _ = doJSON(t, app, http.MethodGet, "/api/chat/sessions", nil)
	assert.Equal(t, fiber.StatusOK, code)

	code, _ = doJSON(t, app, http.MethodGet, "/api/chat/sessions/"+uuid.NewString()+"/messages", nil)
	assert.Equal(t, fiber.StatusNotFound, code)

	code, body = doJSON(t, app, http.MethodDelete, "/api/chat/sessions/not-a-uuid", nil)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "Session not found", body.Message)

	code, _ = doJSON(t, app, http.MethodDelete, "/api/chat/sessions/"+sessionId.String(), nil)
	assert.Equal(t, fiber.StatusOK, code)
}

func TestAppointmentController(t *testing.T) {
	svc := &fakeAppointmentService{book: func(req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
		switch req.DoctorId {
		case "doc-99":
			return nil, service.ErrDoctorNotFound
		case "doc-2":
			return nil, service.ErrSlotUnavailable
		}
		return &dto.AppointmentResponse{DoctorId: req.DoctorId, Slot: req.Slot, Status: "scheduled"}, nil
	}}
	app := newTestApp()
	NewAppointmentController(svc).RegisterRoutes(app.Group("/api"), fakeAuth)

	tests := []struct {
		name     string
		doctorId string
		wantCode int
	}{
		{"booked", "doc-1", fiber.StatusOK},
		{"unknown doctor", "doc-99", fiber.StatusNotFound},
		{"slot taken", "doc-2", fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := doJSON(t, app, http.MethodPost, "/api/appointments", dto.CreateAppointmentRequest{
				DoctorId: tt.doctorId, Slot: "Tomorrow 9:00 AM", Symptoms: "cough",
			})
			assert.Equal(t, tt.wantCode, code)
		})
	}

	code, _ := doJSON(t, app, http.MethodPost, "/api/appointments", map[string]string{"doctor_id": "doc-1"})
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, _ = doJSON(t, app, http.MethodGet, "/api/appointments", nil)
	assert.Equal(t, fiber.StatusOK, code)

	code, body := doJSON(t, app, http.MethodPatch, "/api/appointments/"+uuid.NewString()+"/cancel", nil)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "Appointment not found", body.Message)
}

func TestVoiceController(t *testing.T) {
	svc := &fakeVoiceService{transcribe: func(body []byte, filename string) (*dto.STTResponse, error) {
		if len(body) == 0 {
			return nil, fmt.Errorf("%w: %v", service.ErrTranscriptionFailed, errors.New("empty audio"))
		}
		return &dto.STTResponse{Text: filename + ":" + string(body)}, nil
	}}
	app := newTestApp()
	NewVoiceController(svc).RegisterRoutes(app.Group("/api"), fakeAuth)

	upload := func(field string, content []byte) *http.Request {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile(field, "clip.webm")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, w.Close())
		req := httptest.NewRequest(http.MethodPost, "/api/voice/speech-to-text", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		return req
	}

	code, body := send(t, app, upload("audio_file", []byte("hello")))
	assert.Equal(t, fiber.StatusOK, code)
	assert.JSONEq(t, `{"text":"clip.webm:hello"}`, string(body.Data))

	code, body = send(t, app, upload("audio_file", nil))
	assert.Equal(t, fiber.StatusInternalServerError, code)
	assert.Equal(t, "Transcription failed: empty audio", body.Message)

	code, _ = send(t, app, upload("file", []byte("hello")))
	assert.Equal(t, fiber.StatusBadRequest, code)

	code, body = doJSON(t, app, http.MethodPost, "/api/voice/text-to-speech", dto.TTSRequest{Text: "hi"})
	assert.Equal(t, fiber.StatusInternalServerError, code)
	assert.Equal(t, "TTS failed: quota exceeded", body.Message)

	code, body = doJSON(t, app, http.MethodGet, "/api/voice/voices", nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, string(body.Data), `"voice_id":"nova"`)
}

func TestHealthController(t *testing.T) {
	app := newTestApp()
	NewHealthController().RegisterRoutes(app.Group("/api"))

	code, body := doJSON(t, app, http.MethodGet, "/api/", nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.JSONEq(t, `{"message":"Healthcare Chatbot API","status":"healthy"}`, string(body.Data))

	code, body = doJSON(t, app, http.MethodGet, "/api/health", nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, string(body.Data), `"status":"healthy"`)
}
