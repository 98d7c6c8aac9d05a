package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvstudio/pkg/auth"
	"github.com/artem13815/cvstudio/pkg/customization"
	"github.com/artem13815/cvstudio/pkg/cv"
	"github.com/artem13815/cvstudio/pkg/health"
	"github.com/artem13815/cvstudio/pkg/resume"
)

type MockCVUseCase struct{ mock.Mock }

func (m *MockCVUseCase) Create(ctx context.Context, actorID uuid.UUID, payload []byte) (cv.CV, error) {
	args := m.Called(ctx, actorID, payload)
	return args.Get(0).(cv.CV), args.Error(1)
}

func (m *MockCVUseCase) Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (cv.CV, error) {
	args := m.Called(ctx, actorID, isAdmin, id)
	return args.Get(0).(cv.CV), args.Error(1)
}

func (m *MockCVUseCase) List(ctx context.Context, actorID uuid.UUID, isAdmin bool, limit, offset int) ([]cv.CV, error) {
	args := m.Called(ctx, actorID, isAdmin, limit, offset)
	return args.Get(0).([]cv.CV), args.Error(1)
}

func (m *MockCVUseCase) Update(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, payload []byte) (cv.CV, error) {
	args := m.Called(ctx, actorID, isAdmin, id, payload)
	return args.Get(0).(cv.CV), args.Error(1)
}

func (m *MockCVUseCase) ApplyChanges(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, payload []byte) (cv.CV, error) {
	args := m.Called(ctx, actorID, isAdmin, id, payload)
	return args.Get(0).(cv.CV), args.Error(1)
}

func (m *MockCVUseCase) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	return m.Called(ctx, actorID, isAdmin, id).Error(0)
}

func (m *MockCVUseCase) Upload(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, filename string, data []byte) (cv.CV, resume.Result, error) {
	args := m.Called(ctx, actorID, isAdmin, id, filename, data)
	return args.Get(0).(cv.CV), args.Get(1).(resume.Result), args.Error(2)
}

func (m *MockCVUseCase) SetPhoto(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, filename string, data []byte) (cv.CV, error) {
	args := m.Called(ctx, actorID, isAdmin, id, filename, data)
	return args.Get(0).(cv.CV), args.Error(1)
}

func (m *MockCVUseCase) Versions(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, limit, offset int) ([]cv.Version, error) {
	args := m.Called(ctx, actorID, isAdmin, id, limit, offset)
	return args.Get(0).([]cv.Version), args.Error(1)
}

func (m *MockCVUseCase) Mutate(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, fn cv.MutateFunc) (cv.CV, bool, error) {
	args := m.Called(ctx, actorID, isAdmin, id, fn)
	return args.Get(0).(cv.CV), args.Bool(1), args.Error(2)
}

type MockCustomizationUseCase struct{ mock.Mock }

func (m *MockCustomizationUseCase) Customize(ctx context.Context, actorID uuid.UUID, isAdmin bool, cvID uuid.UUID, jobDescription string) (customization.Customization, error) {
	args := m.Called(ctx, actorID, isAdmin, cvID, jobDescription)
	return args.Get(0).(customization.Customization), args.Error(1)
}

func (m *MockCustomizationUseCase) ListSuggestions(ctx context.Context, actorID uuid.UUID, isAdmin bool, cvID uuid.UUID, limit, offset int) ([]customization.Suggestion, error) {
	args := m.Called(ctx, actorID, isAdmin, cvID, limit, offset)
	return args.Get(0).([]customization.Suggestion), args.Error(1)
}

func (m *MockCustomizationUseCase) ApplySuggestion(ctx context.Context, actorID uuid.UUID, isAdmin bool, cvID, suggestionID uuid.UUID) (customization.ApplyResult, error) {
	args := m.Called(ctx, actorID, isAdmin, cvID, suggestionID)
	return args.Get(0).(customization.ApplyResult), args.Error(1)
}

func (m *MockCustomizationUseCase) Enhance(ctx context.Context, actorID uuid.UUID, isAdmin bool, cvID uuid.UUID, jobDescription string) (customization.EnhanceResult, error) {
	args := m.Called(ctx, actorID, isAdmin, cvID, jobDescription)
	return args.Get(0).(customization.EnhanceResult), args.Error(1)
}

type MockAuthUseCase struct{ mock.Mock }

func (m *MockAuthUseCase) Register(ctx context.Context, name, email, password string) (auth.AuthResult, error) {
	args := m.Called(ctx, name, email, password)
	return args.Get(0).(auth.AuthResult), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, email, password string) (auth.AuthResult, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(auth.AuthResult), args.Error(1)
}

func (m *MockAuthUseCase) Me(ctx context.Context, id uuid.UUID) (auth.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(auth.User), args.Error(1)
}

var testActor = uuid.MustParse("11111111-1111-1111-1111-111111111111")

// withActor imitates the JWT middleware.
func withActor(id uuid.UUID, isAdmin bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userId", id.String())
		c.Locals("isAdmin", isAdmin)
		return c.Next()
	}
}

func newCVApp(uc cv.UseCase, mw ...fiber.Handler) *fiber.App {
	app := fiber.New()
	h := NewCVHandler(uc, 1024)
	for _, m := range mw {
		app.Use(m)
	}
	app.Get("/cvs", h.List)
	app.Post("/cvs", h.Create)
	app.Get("/cvs/:id", h.Get)
	app.Put("/cvs/:id", h.Update)
	app.Delete("/cvs/:id", h.Delete)
	app.Post("/cvs/:id/upload", h.Upload)
	app.Post("/cvs/:id/photo", h.Photo)
	app.Post("/cvs/:id/apply-ai-changes", h.ApplyAIChanges)
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)
	return resp.StatusCode, body
}

func jsonRequest(method, url, body string) *http.Request {
	req := httptest.NewRequest(method, url, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, url, field, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestCVHandler_Unauthorized(t *testing.T) {
	uc := new(MockCVUseCase)
	app := newCVApp(uc)

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/cvs", nil))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, errNoActor.Error(), body["message"])
	uc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCVHandler_InvalidID(t *testing.T) {
	uc := new(MockCVUseCase)
	app := newCVApp(uc, withActor(testActor, false))

	status, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/cvs/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCVHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", cv.ErrNotFound, http.StatusNotFound},
		{"conflict", cv.ErrConflict, http.StatusConflict},
		{"invalid", cv.ErrInvalidPayload, http.StatusBadRequest},
		{"unsupported", resume.ErrUnsupportedFormat, http.StatusUnsupportedMediaType},
		{"extraction", resume.ErrExtractionFailed, http.StatusUnprocessableEntity},
		{"unexpected", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := uuid.New()
			uc := new(MockCVUseCase)
			uc.On("Get", mock.Anything, testActor, false, id).Return(cv.CV{}, tc.err)
			app := newCVApp(uc, withActor(testActor, false))

			status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/cvs/"+id.String(), nil))
			assert.Equal(t, tc.status, status)
			if tc.status == http.StatusInternalServerError {
				assert.Equal(t, "internal error", body["message"])
			}
		})
	}
}

func TestCVHandler_CreatePassesRawBody(t *testing.T) {
	payload := `{"fullName":"Jane Doe","experience":[{"company":"ACME"}]}`
	uc := new(MockCVUseCase)
	uc.On("Create", mock.Anything, testActor, []byte(payload)).
		Return(cv.CV{ID: uuid.New(), FullName: "Jane Doe"}, nil)
	app := newCVApp(uc, withActor(testActor, false))

	status, body := do(t, app, jsonRequest(http.MethodPost, "/cvs", payload))
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Jane Doe", body["full_name"])
	uc.AssertExpectations(t)
}

func TestCVHandler_ListUsesAdminFlag(t *testing.T) {
	uc := new(MockCVUseCase)
	uc.On("List", mock.Anything, testActor, true, 10, 5).Return([]cv.CV{}, nil)
	app := newCVApp(uc, withActor(testActor, true))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/cvs?limit=10&offset=5", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	uc.AssertExpectations(t)
}

func TestCVHandler_Delete(t *testing.T) {
	id := uuid.New()
	uc := new(MockCVUseCase)
	uc.On("Delete", mock.Anything, testActor, false, id).Return(nil)
	app := newCVApp(uc, withActor(testActor, false))

	status, body := do(t, app, httptest.NewRequest(http.MethodDelete, "/cvs/"+id.String(), nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "CV deleted successfully", body["message"])
}

func TestCVHandler_UploadPartialParseSetsHeader(t *testing.T) {
	id := uuid.New()
	data := []byte("Jane Doe\njane@example.com")
	uc := new(MockCVUseCase)
	uc.On("Upload", mock.Anything, testActor, false, id, "cv.txt", data).
		Return(cv.CV{ID: id}, resume.Result{ParseError: "experience: boom"}, nil)
	app := newCVApp(uc, withActor(testActor, false))

	resp, err := app.Test(multipartRequest(t, "/cvs/"+id.String()+"/upload", "file", "cv.txt", data), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "partial parse", resp.Header.Get("X-Parse-Warning"))
}

func TestCVHandler_UploadTooLarge(t *testing.T) {
	id := uuid.New()
	uc := new(MockCVUseCase)
	app := newCVApp(uc, withActor(testActor, false))

	status, body := do(t, app, multipartRequest(t, "/cvs/"+id.String()+"/upload", "file", "cv.txt", bytes.Repeat([]byte("a"), 2048)))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "file too large")
	uc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCVHandler_UploadMissingFile(t *testing.T) {
	id := uuid.New()
	app := newCVApp(new(MockCVUseCase), withActor(testActor, false))

	status, body := do(t, app, jsonRequest(http.MethodPost, "/cvs/"+id.String()+"/upload", `{}`))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "file is required", body["message"])
}

func TestCVHandler_PhotoUnsupported(t *testing.T) {
	id := uuid.New()
	uc := new(MockCVUseCase)
	uc.On("SetPhoto", mock.Anything, testActor, false, id, "me.bmp", []byte("img")).
		Return(cv.CV{}, cv.ErrUnsupportedPhoto)
	app := newCVApp(uc, withActor(testActor, false))

	status, _ := do(t, app, multipartRequest(t, "/cvs/"+id.String()+"/photo", "file", "me.bmp", []byte("img")))
	assert.Equal(t, http.StatusUnsupportedMediaType, status)
}

func TestCVHandler_PhotoReturnsPath(t *testing.T) {
	id := uuid.New()
	uc := new(MockCVUseCase)
	uc.On("SetPhoto", mock.Anything, testActor, false, id, "me.png", []byte("img")).
		Return(cv.CV{PhotoPath: "/uploads/photos/x.png"}, nil)
	app := newCVApp(uc, withActor(testActor, false))

	status, body := do(t, app, multipartRequest(t, "/cvs/"+id.String()+"/photo", "file", "me.png", []byte("img")))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "/uploads/photos/x.png", body["photo_path"])
}

func TestCVHandler_ApplyAIChanges(t *testing.T) {
	id := uuid.New()

	t.Run("rejects non-object", func(t *testing.T) {
		uc := new(MockCVUseCase)
		app := newCVApp(uc, withActor(testActor, false))
		for _, body := range []string{`{}`, `{"enhanced_cv":[1,2]}`, `{"enhanced_cv":"text"}`, `not json`} {
			status, resp := do(t, app, jsonRequest(http.MethodPost, "/cvs/"+id.String()+"/apply-ai-changes", body))
			assert.Equal(t, http.StatusBadRequest, status, body)
			assert.Equal(t, "enhanced_cv must be a JSON object", resp["message"])
		}
		uc.AssertNotCalled(t, "ApplyChanges", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("passes object through", func(t *testing.T) {
		uc := new(MockCVUseCase)
		uc.On("ApplyChanges", mock.Anything, testActor, false, id, mock.MatchedBy(func(p []byte) bool {
			var m map[string]any
			return json.Unmarshal(p, &m) == nil && m["profile_summary"] == "Sharper"
		})).Return(cv.CV{ID: id, ProfileSummary: "Sharper"}, nil)
		app := newCVApp(uc, withActor(testActor, false))

		status, body := do(t, app, jsonRequest(http.MethodPost, "/cvs/"+id.String()+"/apply-ai-changes",
			`{"enhanced_cv":{"profile_summary":"Sharper"}}`))
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Sharper", body["profile_summary"])
		uc.AssertExpectations(t)
	})
}

func newCustomizationApp(uc customization.UseCase) *fiber.App {
	app := fiber.New()
	app.Use(withActor(testActor, false))
	h := NewCustomizationHandler(uc)
	app.Post("/cvs/:id/customize", h.Customize)
	app.Post("/cvs/:id/enhance-for-job", h.Enhance)
	app.Get("/cvs/:id/suggestions", h.Suggestions)
	app.Post("/cvs/:id/suggestions/:sid/apply", h.ApplySuggestion)
	return app
}

func TestCustomizationHandler_Customize(t *testing.T) {
	id := uuid.New()
	uc := new(MockCustomizationUseCase)
	uc.On("Customize", mock.Anything, testActor, false, id, "Go developer").
		Return(customization.Customization{ID: uuid.New(), CVID: id, Score: 50}, nil)
	app := newCustomizationApp(uc)

	status, body := do(t, app, jsonRequest(http.MethodPost, "/cvs/"+id.String()+"/customize", `{"job_description":"Go developer"}`))
	assert.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 50, body["score"])
}

func TestCustomizationHandler_EmptyJobDescription(t *testing.T) {
	id := uuid.New()
	uc := new(MockCustomizationUseCase)
	uc.On("Enhance", mock.Anything, testActor, false, id, "").
		Return(customization.EnhanceResult{}, customization.ErrEmptyJobDescription)
	app := newCustomizationApp(uc)

	status, _ := do(t, app, jsonRequest(http.MethodPost, "/cvs/"+id.String()+"/enhance-for-job", `{}`))
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCustomizationHandler_ApplySuggestionErrors(t *testing.T) {
	id, sid := uuid.New(), uuid.New()
	cases := []struct {
		err    error
		status int
	}{
		{customization.ErrSuggestionNotFound, http.StatusNotFound},
		{customization.ErrAlreadyApplied, http.StatusConflict},
		{cv.ErrNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		uc := new(MockCustomizationUseCase)
		uc.On("ApplySuggestion", mock.Anything, testActor, false, id, sid).
			Return(customization.ApplyResult{}, tc.err)
		app := newCustomizationApp(uc)

		status, _ := do(t, app, httptest.NewRequest(http.MethodPost, "/cvs/"+id.String()+"/suggestions/"+sid.String()+"/apply", nil))
		assert.Equal(t, tc.status, status, tc.err.Error())
	}
}

func TestCustomizationHandler_SuggestionsBadSID(t *testing.T) {
	id := uuid.New()
	app := newCustomizationApp(new(MockCustomizationUseCase))

	status, body := do(t, app, httptest.NewRequest(http.MethodPost, "/cvs/"+id.String()+"/suggestions/xyz/apply", nil))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "невалидный sid", body["message"])
}

func TestParseHandler(t *testing.T) {
	app := fiber.New()
	app.Post("/parse", NewParseHandler(1<<20).Parse)

	t.Run("text file", func(t *testing.T) {
		text := "Jane Doe\njane@example.com\n\nSkills\nGo, Docker, PostgreSQL\n"
		status, body := do(t, app, multipartRequest(t, "/parse", "file", "cv.txt", []byte(text)))
		require.Equal(t, http.StatusOK, status)
		info, ok := body["personalInfo"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "jane@example.com", info["email"])
		assert.Contains(t, body["raw_text"], "Jane Doe")
	})

	t.Run("binary file", func(t *testing.T) {
		status, _ := do(t, app, multipartRequest(t, "/parse", "file", "cv.exe", []byte{0x4d, 0x5a, 0x00, 0x01}))
		assert.Equal(t, http.StatusUnsupportedMediaType, status)
	})
}

func newAuthApp(uc auth.AuthUseCase, mw ...fiber.Handler) *fiber.App {
	app := fiber.New()
	for _, m := range mw {
		app.Use(m)
	}
	h := NewAuthHandler(uc)
	app.Post("/auth/register", h.Register)
	app.Post("/auth/login", h.Login)
	app.Post("/auth/logout", h.Logout)
	app.Get("/auth/me", h.Me)
	return app
}

func TestAuthHandler_Register(t *testing.T) {
	uc := new(MockAuthUseCase)
	uc.On("Register", mock.Anything, "Jane", "jane@example.com", "secret1").
		Return(auth.AuthResult{Token: "tok", TokenType: "bearer"}, nil)
	uc.On("Register", mock.Anything, "", "dup@example.com", "secret1").
		Return(auth.AuthResult{}, auth.ErrUserAlreadyExists)
	uc.On("Register", mock.Anything, "", "bad@example.com", "123").
		Return(auth.AuthResult{}, auth.ErrInvalidCredentials)
	app := newAuthApp(uc)

	status, body := do(t, app, jsonRequest(http.MethodPost, "/auth/register", `{"name":"Jane","email":"jane@example.com","password":"secret1"}`))
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "tok", body["access_token"])

	status, _ = do(t, app, jsonRequest(http.MethodPost, "/auth/register", `{"email":"dup@example.com","password":"secret1"}`))
	assert.Equal(t, http.StatusConflict, status)

	status, _ = do(t, app, jsonRequest(http.MethodPost, "/auth/register", `{"email":"bad@example.com","password":"123"}`))
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, jsonRequest(http.MethodPost, "/auth/register", `{"email":""}`))
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAuthHandler_Login(t *testing.T) {
	uc := new(MockAuthUseCase)
	uc.On("Login", mock.Anything, "jane@example.com", "wrong").Return(auth.AuthResult{}, auth.ErrInvalidCredentials)
	uc.On("Login", mock.Anything, "off@example.com", "secret1").Return(auth.AuthResult{}, auth.ErrUserDisabled)
	app := newAuthApp(uc)

	status, body := do(t, app, jsonRequest(http.MethodPost, "/auth/login", `{"email":"jane@example.com","password":"wrong"}`))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "invalid email or password", body["message"])

	status, _ = do(t, app, jsonRequest(http.MethodPost, "/auth/login", `{"email":"off@example.com","password":"secret1"}`))
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	uc := new(MockAuthUseCase)
	uc.On("Me", mock.Anything, testActor).Return(auth.User{ID: testActor, Email: "jane@example.com"}, nil)

	status, _ := do(t, newAuthApp(uc), httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, status)

	app := newAuthApp(uc, withActor(testActor, false))
	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "jane@example.com", body["email"])

	status, body = do(t, app, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Logged out successfully", body["message"])
}

func TestParseLimitOffset(t *testing.T) {
	cases := []struct {
		query         string
		limit, offset int
	}{
		{"", 50, 0},
		{"?limit=10&offset=5", 10, 5},
		{"?limit=500", 50, 0},
		{"?limit=-1&offset=-3", 50, 0},
		{"?limit=abc&offset=7", 50, 7},
	}
	for _, tc := range cases {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error {
			limit, offset := parseLimitOffset(c, 50)
			assert.Equal(t, tc.limit, limit, tc.query)
			assert.Equal(t, tc.offset, offset, tc.query)
			return nil
		})
		_, err := app.Test(httptest.NewRequest(http.MethodGet, "/"+tc.query, nil), -1)
		require.NoError(t, err)
	}
}

type stubReadiness struct {
	report health.Report
	err    error
}

func (s stubReadiness) Ready(context.Context) (health.Report, error) { return s.report, s.err }

func TestHealthHandler(t *testing.T) {
	newApp := func(r health.ReadinessUseCase) *fiber.App {
		app := fiber.New()
		h := NewHealthHandler(r)
		app.Get("/health", h.Health)
		app.Get("/ready", h.Ready)
		return app
	}

	status, body := do(t, newApp(stubReadiness{}), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	up := stubReadiness{report: health.Report{"postgres": "ok"}}
	status, body = do(t, newApp(up), httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", body["status"])

	down := stubReadiness{report: health.Report{"postgres": "timeout"}, err: errors.New("postgres: timeout")}
	status, body = do(t, newApp(down), httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, map[string]any{"postgres": "timeout"}, body["checks"])
}
