package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/petty-cash-management/internal/auth"
	"github.com/frahmantamala/petty-cash-management/internal/currency"
	"github.com/frahmantamala/petty-cash-management/internal/receipt"
	"github.com/frahmantamala/petty-cash-management/internal/request"
	"github.com/frahmantamala/petty-cash-management/internal/rule"
	"github.com/frahmantamala/petty-cash-management/internal/smtpsettings"
	"github.com/frahmantamala/petty-cash-management/internal/transport/middleware"
	"github.com/frahmantamala/petty-cash-management/internal/transport/swagger"
	"github.com/frahmantamala/petty-cash-management/internal/user"
)

// Handlers bundles every feature handler the router mounts.
type Handlers struct {
	Auth         *auth.Handler
	User         *user.Handler
	Request      *request.Handler
	Rule         *rule.Handler
	Receipt      *receipt.Handler
	Currency     *currency.Handler
	SMTPSettings *smtpsettings.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, rbac *auth.RBACAuthorization, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORSWithOrigins(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI spec and Swagger UI live outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/signup", h.Auth.Signup)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Everything below requires a valid access token
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.CurrentUser)

			pr.Route("/requests", func(rr chi.Router) {
				rr.Post("/", h.Request.SubmitRequest)
				rr.Get("/", h.Request.ListRequests)
				rr.Get("/summary", h.Request.RequestSummary)
				rr.Get("/{id}", h.Request.GetRequest)

				rr.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireApproveRequest())
					ar.Get("/pending", h.Request.ListPendingRequests)
					ar.Patch("/{id}/approve", h.Request.ApproveRequest)
				})

				rr.Group(func(ar chi.Router) {
					ar.Use(rbac.RequireRejectRequest())
					ar.Patch("/{id}/reject", h.Request.RejectRequest)
				})

				rr.Get("/{id}/receipt", h.Receipt.GetReceipt)

				rr.Group(func(cr chi.Router) {
					cr.Use(rbac.RequireUploadReceipt())
					cr.Post("/{id}/receipt", h.Receipt.AttachReceipt)
					cr.Post("/{id}/receipt/upload", h.Receipt.UploadReceipt)
				})
			})

			pr.Group(func(cr chi.Router) {
				cr.Use(rbac.RequireUploadReceipt())
				cr.Get("/receipts/pending", h.Receipt.ListPendingReceipts)
			})

			pr.Get("/currencies", h.Currency.ListCurrencies)

			// Admin screens
			pr.Group(func(ar chi.Router) {
				ar.Use(rbac.RequirePermission(auth.PermissionManageUsers))
				ar.Get("/users", h.User.ListUsers)
				ar.Get("/users/approvers", h.User.ListApprovers)
				ar.Post("/users", h.User.CreateUser)
				ar.Get("/users/{id}", h.User.GetUser)
				ar.Patch("/users/{id}", h.User.UpdateUser)
				ar.Delete("/users/{id}", h.User.DeactivateUser)
			})

			pr.Group(func(ar chi.Router) {
				ar.Use(rbac.RequirePermission(auth.PermissionManageRules))
				ar.Get("/rules", h.Rule.ListRules)
				ar.Post("/rules", h.Rule.SaveRule)
				ar.Delete("/rules/{id}", h.Rule.DeactivateRule)
			})

			pr.Group(func(ar chi.Router) {
				ar.Use(rbac.RequirePermission(auth.PermissionManageCurrencies))
				ar.Post("/currencies", h.Currency.SaveCurrency)
				ar.Patch("/currencies/{id}/default", h.Currency.SetDefaultCurrency)
			})

			pr.Group(func(ar chi.Router) {
				ar.Use(rbac.RequirePermission(auth.PermissionManageSMTP))
				ar.Get("/settings/smtp", h.SMTPSettings.GetSettings)
				ar.Put("/settings/smtp", h.SMTPSettings.SaveSettings)
			})
		})
	})
}
