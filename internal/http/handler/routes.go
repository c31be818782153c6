package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"claimflow/internal/claim"
	"claimflow/internal/config"
	"claimflow/internal/http/middleware"
	"claimflow/internal/service"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	DB          *sql.DB
	Claims      service.ClaimService
	Attachments service.AttachmentService
	Users       service.UserService
	Auth        config.AuthConfig
	// Gatherer backs /metrics; nil leaves the endpoint unmounted.
	Gatherer prometheus.Gatherer
	Log      logrus.FieldLogger
	// Location renders report timestamps.
	Location *time.Location
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Probes and /metrics are public; everything under /api/v1 requires a principal.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api/v1", middleware.Auth(d.Auth, d.Users, d.Log))
	api.Get("/me", Me())

	claims := api.Group("/claims")
	claims.Get("/", ListMyClaims(d.Claims))
	claims.Post("/", CreateClaim(d.Claims))
	claims.Post("/quote", QuoteClaim(d.Claims))
	claims.Get("/:id", GetClaim(d.Claims))
	claims.Put("/:id", EditClaim(d.Claims))
	claims.Post("/:id/submit", TransitionClaim(d.Claims, claim.ActionSubmit))
	claims.Post("/:id/verify", TransitionClaim(d.Claims, claim.ActionVerify))
	claims.Post("/:id/approve", TransitionClaim(d.Claims, claim.ActionApprove))
	claims.Post("/:id/finalise", TransitionClaim(d.Claims, claim.ActionFinalise))
	claims.Post("/:id/reject", RejectClaim(d.Claims))
	claims.Get("/:id/documents", ListDocuments(d.Attachments))
	claims.Post("/:id/documents", UploadDocument(d.Attachments))

	review := api.Group("/review")
	review.Get("/queue", ReviewQueue(d.Claims))
	review.Get("/claims", ListClaims(d.Claims))

	hr := api.Group("/hr")
	hr.Get("/report", Report(d.Claims))
	hr.Get("/report.xlsx", ReportXLSX(d.Claims, d.Location))
	hr.Get("/report/months", ReportMonths(d.Claims))
	hr.Get("/users", ListUsers(d.Users))
	hr.Post("/users", CreateUser(d.Users))
	hr.Put("/users/:id/rate", SetRate(d.Users))

	docs := api.Group("/documents")
	docs.Get("/:id", DownloadDocument(d.Attachments))
	docs.Get("/:id/link", DocumentLink(d.Attachments))
	docs.Delete("/:id", DeleteDocument(d.Attachments))
}
