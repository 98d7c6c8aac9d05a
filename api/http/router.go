package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/cvstudio/api/http/handlers"
)

// Handlers collects everything Register wires onto the app.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Health        *handlers.HealthHandler
	CV            *handlers.CVHandler
	Customization *handlers.CustomizationHandler
	Parse         *handlers.ParseHandler
	Applications  *handlers.ApplicationHandler
	CoverLetters  *handlers.CoverLetterHandler
	Admin         *handlers.AdminHandler
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers, authMW fiber.Handler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", h.Auth.Register)
	a.Post("/login", h.Auth.Login)
	a.Post("/logout", h.Auth.Logout)
	a.Get("/me", authMW, h.Auth.Me)

	v1.Post("/parse", authMW, h.Parse.Parse)

	cvs := v1.Group("/cvs", authMW)
	cvs.Get("/", h.CV.List)
	cvs.Post("/", h.CV.Create)
	cvs.Get("/:id", h.CV.Get)
	cvs.Put("/:id", h.CV.Update)
	cvs.Delete("/:id", h.CV.Delete)
	cvs.Post("/:id/upload", h.CV.Upload)
	cvs.Post("/:id/photo", h.CV.Photo)
	cvs.Get("/:id/versions", h.CV.Versions)
	cvs.Post("/:id/apply-ai-changes", h.CV.ApplyAIChanges)

	cvs.Post("/:id/customize", h.Customization.Customize)
	cvs.Post("/:id/enhance-for-job", h.Customization.Enhance)
	cvs.Get("/:id/suggestions", h.Customization.Suggestions)
	cvs.Post("/:id/suggestions/:sid/apply", h.Customization.ApplySuggestion)

	apps := v1.Group("/applications", authMW)
	apps.Get("/", h.Applications.List)
	apps.Post("/", h.Applications.Create)
	// /stats до /:id, иначе маршрут перехватит параметр
	apps.Get("/stats", h.Applications.Stats)
	apps.Get("/:id", h.Applications.Get)
	apps.Put("/:id", h.Applications.Update)
	apps.Patch("/:id/status", h.Applications.SetStatus)
	apps.Delete("/:id", h.Applications.Delete)

	letters := v1.Group("/cover-letters", authMW)
	letters.Get("/", h.CoverLetters.List)
	letters.Post("/", h.CoverLetters.Create)
	letters.Post("/generate", h.CoverLetters.Generate)
	letters.Get("/:id", h.CoverLetters.Get)
	letters.Put("/:id", h.CoverLetters.Update)
	letters.Delete("/:id", h.CoverLetters.Delete)

	adm := v1.Group("/admin", authMW)
	adm.Get("/users", h.Admin.ListUsers)
	adm.Patch("/users/:id", h.Admin.UpdateUser)
	adm.Delete("/users/:id", h.Admin.DeleteUser)
	adm.Get("/stats", h.Admin.Stats)
}
