package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/artem13815/cvstudio/pkg/admin"
	"github.com/artem13815/cvstudio/pkg/application"
	"github.com/artem13815/cvstudio/pkg/coverletter"
	"github.com/artem13815/cvstudio/pkg/cv"
)

type MockApplicationUseCase struct{ mock.Mock }

func (m *MockApplicationUseCase) Create(ctx context.Context, actorID uuid.UUID, in application.Fields) (application.Application, error) {
	args := m.Called(ctx, actorID, in)
	return args.Get(0).(application.Application), args.Error(1)
}

func (m *MockApplicationUseCase) Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (application.Application, error) {
	args := m.Called(ctx, actorID, isAdmin, id)
	return args.Get(0).(application.Application), args.Error(1)
}

func (m *MockApplicationUseCase) List(ctx context.Context, actorID uuid.UUID, isAdmin bool, status string, limit, offset int) ([]application.Application, error) {
	args := m.Called(ctx, actorID, isAdmin, status, limit, offset)
	return args.Get(0).([]application.Application), args.Error(1)
}

func (m *MockApplicationUseCase) Update(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, in application.Fields) (application.Application, error) {
	args := m.Called(ctx, actorID, isAdmin, id, in)
	return args.Get(0).(application.Application), args.Error(1)
}

func (m *MockApplicationUseCase) SetStatus(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, status string) (application.Application, error) {
	args := m.Called(ctx, actorID, isAdmin, id, status)
	return args.Get(0).(application.Application), args.Error(1)
}

func (m *MockApplicationUseCase) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	return m.Called(ctx, actorID, isAdmin, id).Error(0)
}

func (m *MockApplicationUseCase) Stats(ctx context.Context, actorID uuid.UUID) (application.Stats, error) {
	args := m.Called(ctx, actorID)
	return args.Get(0).(application.Stats), args.Error(1)
}

type MockCoverLetterUseCase struct{ mock.Mock }

func (m *MockCoverLetterUseCase) Create(ctx context.Context, actorID uuid.UUID, in coverletter.Draft) (coverletter.CoverLetter, error) {
	args := m.Called(ctx, actorID, in)
	return args.Get(0).(coverletter.CoverLetter), args.Error(1)
}

func (m *MockCoverLetterUseCase) Get(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (coverletter.CoverLetter, error) {
	args := m.Called(ctx, actorID, isAdmin, id)
	return args.Get(0).(coverletter.CoverLetter), args.Error(1)
}

func (m *MockCoverLetterUseCase) List(ctx context.Context, actorID uuid.UUID, isAdmin bool, limit, offset int) ([]coverletter.CoverLetter, error) {
	args := m.Called(ctx, actorID, isAdmin, limit, offset)
	return args.Get(0).([]coverletter.CoverLetter), args.Error(1)
}

func (m *MockCoverLetterUseCase) Update(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, in coverletter.Draft) (coverletter.CoverLetter, error) {
	args := m.Called(ctx, actorID, isAdmin, id, in)
	return args.Get(0).(coverletter.CoverLetter), args.Error(1)
}

func (m *MockCoverLetterUseCase) Delete(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	return m.Called(ctx, actorID, isAdmin, id).Error(0)
}

func (m *MockCoverLetterUseCase) Generate(ctx context.Context, actorID uuid.UUID, isAdmin bool, req coverletter.GenerateRequest) (coverletter.CoverLetter, error) {
	args := m.Called(ctx, actorID, isAdmin, req)
	return args.Get(0).(coverletter.CoverLetter), args.Error(1)
}

type MockAdminUseCase struct{ mock.Mock }

func (m *MockAdminUseCase) ListUsers(ctx context.Context, actorID uuid.UUID, isAdmin bool, limit, offset int) ([]admin.UserSummary, error) {
	args := m.Called(ctx, actorID, isAdmin, limit, offset)
	return args.Get(0).([]admin.UserSummary), args.Error(1)
}

func (m *MockAdminUseCase) UpdateUser(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID, patch admin.UserPatch) (admin.UserSummary, error) {
	args := m.Called(ctx, actorID, isAdmin, id, patch)
	return args.Get(0).(admin.UserSummary), args.Error(1)
}

func (m *MockAdminUseCase) DeleteUser(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) error {
	return m.Called(ctx, actorID, isAdmin, id).Error(0)
}

func (m *MockAdminUseCase) Stats(ctx context.Context, actorID uuid.UUID, isAdmin bool) (admin.Stats, error) {
	args := m.Called(ctx, actorID, isAdmin)
	return args.Get(0).(admin.Stats), args.Error(1)
}

func newApplicationApp(uc application.UseCase) *fiber.App {
	app := fiber.New()
	h := NewApplicationHandler(uc)
	app.Use(withActor(testActor, false))
	app.Get("/applications", h.List)
	app.Post("/applications", h.Create)
	app.Get("/applications/stats", h.Stats)
	app.Get("/applications/:id", h.Get)
	app.Put("/applications/:id", h.Update)
	app.Patch("/applications/:id/status", h.SetStatus)
	app.Delete("/applications/:id", h.Delete)
	return app
}

func TestApplicationHandler_Create(t *testing.T) {
	uc := new(MockApplicationUseCase)
	id := uuid.New()
	uc.On("Create", mock.Anything, testActor, mock.MatchedBy(func(in application.Fields) bool {
		return in.Company != nil && *in.Company == "Acme" && in.Role != nil && *in.Role == "Engineer" && in.Status == nil
	})).Return(application.Application{ID: id, Company: "Acme", Role: "Engineer", Status: application.StatusSaved}, nil)
	app := newApplicationApp(uc)

	status, body := do(t, app, jsonRequest(http.MethodPost, "/applications", `{"company":"Acme","role":"Engineer"}`))
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, id.String(), body["id"])
	assert.Equal(t, "saved", body["status"])
}

func TestApplicationHandler_ValidationIsBadRequest(t *testing.T) {
	uc := new(MockApplicationUseCase)
	uc.On("Create", mock.Anything, testActor, mock.Anything).Return(application.Application{}, application.ErrValidation("company и role обязательны"))
	app := newApplicationApp(uc)

	status, body := do(t, app, jsonRequest(http.MethodPost, "/applications", `{"company":"Acme"}`))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "company и role обязательны", body["message"])
}

func TestApplicationHandler_ListPassesStatusFilter(t *testing.T) {
	uc := new(MockApplicationUseCase)
	uc.On("List", mock.Anything, testActor, false, "offer", 50, 0).Return([]application.Application{}, nil)
	uc.On("List", mock.Anything, testActor, false, "hired", 50, 0).Return([]application.Application(nil), application.ErrInvalidStatus)
	app := newApplicationApp(uc)

	status, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/applications?status=offer", nil))
	assert.Equal(t, http.StatusOK, status)
	status, _ = do(t, app, httptest.NewRequest(http.MethodGet, "/applications?status=hired", nil))
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestApplicationHandler_StatsRouteBeforeID(t *testing.T) {
	uc := new(MockApplicationUseCase)
	uc.On("Stats", mock.Anything, testActor).Return(application.Stats{"applied": 2, "total": 2}, nil)
	app := newApplicationApp(uc)

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/applications/stats", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["total"])
	uc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApplicationHandler_SetStatus(t *testing.T) {
	cases := []struct {
		name string
		req  func(url string) *http.Request
	}{
		{"json body", func(url string) *http.Request {
			return jsonRequest(http.MethodPatch, url, `{"status":"interviewing"}`)
		}},
		{"query", func(url string) *http.Request {
			return httptest.NewRequest(http.MethodPatch, url+"?status=interviewing", nil)
		}},
		{"legacy query", func(url string) *http.Request {
			return httptest.NewRequest(http.MethodPatch, url+"?new_status=interviewing", nil)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := uuid.New()
			uc := new(MockApplicationUseCase)
			uc.On("SetStatus", mock.Anything, testActor, false, id, "interviewing").
				Return(application.Application{ID: id, Status: application.StatusInterviewing}, nil)
			app := newApplicationApp(uc)

			status, body := do(t, app, tc.req("/applications/"+id.String()+"/status"))
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, "interviewing", body["status"])
		})
	}
}

func TestApplicationHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", application.ErrNotFound, http.StatusNotFound},
		{"invalid status", application.ErrInvalidStatus, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := uuid.New()
			uc := new(MockApplicationUseCase)
			uc.On("SetStatus", mock.Anything, testActor, false, id, "bogus").Return(application.Application{}, tc.err)
			app := newApplicationApp(uc)

			status, _ := do(t, app, httptest.NewRequest(http.MethodPatch, "/applications/"+id.String()+"/status?status=bogus", nil))
			assert.Equal(t, tc.status, status)
		})
	}
}

func TestApplicationHandler_Delete(t *testing.T) {
	id := uuid.New()
	uc := new(MockApplicationUseCase)
	uc.On("Delete", mock.Anything, testActor, false, id).Return(nil)
	app := newApplicationApp(uc)

	status, body := do(t, app, httptest.NewRequest(http.MethodDelete, "/applications/"+id.String(), nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Job application deleted successfully", body["message"])
}

func newCoverLetterApp(uc coverletter.UseCase) *fiber.App {
	app := fiber.New()
	h := NewCoverLetterHandler(uc)
	app.Use(withActor(testActor, false))
	app.Get("/cover-letters", h.List)
	app.Post("/cover-letters", h.Create)
	app.Post("/cover-letters/generate", h.Generate)
	app.Get("/cover-letters/:id", h.Get)
	app.Put("/cover-letters/:id", h.Update)
	app.Delete("/cover-letters/:id", h.Delete)
	return app
}

func TestCoverLetterHandler_Generate(t *testing.T) {
	cvID, id := uuid.New(), uuid.New()
	uc := new(MockCoverLetterUseCase)
	uc.On("Generate", mock.Anything, testActor, false, coverletter.GenerateRequest{CVID: cvID, JobDescription: "Go developer"}).
		Return(coverletter.CoverLetter{ID: id, CVID: &cvID, Title: "AI Generated Cover Letter", Content: json.RawMessage(`{"text":"Dear Hiring Manager,","generated_with_ai":false}`)}, nil)
	app := newCoverLetterApp(uc)

	status, body := do(t, app, jsonRequest(http.MethodPost, "/cover-letters/generate",
		`{"cv_id":"`+cvID.String()+`","job_description":"Go developer"}`))
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, id.String(), body["id"])
	content, _ := body["content"].(map[string]any)
	assert.Equal(t, "Dear Hiring Manager,", content["text"])
}

func TestCoverLetterHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"empty job description", coverletter.ErrEmptyJobDescription, http.StatusBadRequest},
		{"unknown cv", cv.ErrNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := new(MockCoverLetterUseCase)
			uc.On("Generate", mock.Anything, testActor, false, mock.Anything).Return(coverletter.CoverLetter{}, tc.err)
			app := newCoverLetterApp(uc)

			status, _ := do(t, app, jsonRequest(http.MethodPost, "/cover-letters/generate", `{"job_description":""}`))
			assert.Equal(t, tc.status, status)
		})
	}
}

func TestCoverLetterHandler_GetNotFound(t *testing.T) {
	id := uuid.New()
	uc := new(MockCoverLetterUseCase)
	uc.On("Get", mock.Anything, testActor, false, id).Return(coverletter.CoverLetter{}, coverletter.ErrNotFound)
	app := newCoverLetterApp(uc)

	status, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/cover-letters/"+id.String(), nil))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdminHandler(t *testing.T) {
	uc := new(MockAdminUseCase)
	other := uuid.New()
	uc.On("Stats", mock.Anything, testActor, false).Return(admin.Stats{}, admin.ErrForbidden)
	uc.On("DeleteUser", mock.Anything, testActor, true, testActor).Return(admin.ErrSelfAction)
	uc.On("DeleteUser", mock.Anything, testActor, true, other).Return(nil)

	h := NewAdminHandler(uc)
	userApp := fiber.New()
	userApp.Use(withActor(testActor, false))
	userApp.Get("/admin/stats", h.Stats)
	adminApp := fiber.New()
	adminApp.Use(withActor(testActor, true))
	adminApp.Delete("/admin/users/:id", h.DeleteUser)

	status, _ := do(t, userApp, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = do(t, adminApp, httptest.NewRequest(http.MethodDelete, "/admin/users/"+testActor.String(), nil))
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := do(t, adminApp, httptest.NewRequest(http.MethodDelete, "/admin/users/"+other.String(), nil))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User "+other.String()+" deleted", body["message"])
}
