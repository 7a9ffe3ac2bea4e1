package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lucasmedrano/tourmarket-backend/api/controllers"
	"github.com/lucasmedrano/tourmarket-backend/api/middleware"
	"github.com/lucasmedrano/tourmarket-backend/internal/auditlogs"
	"github.com/lucasmedrano/tourmarket-backend/internal/carts"
	"github.com/lucasmedrano/tourmarket-backend/internal/notifications"
	"github.com/lucasmedrano/tourmarket-backend/internal/payments"
	"github.com/lucasmedrano/tourmarket-backend/internal/qrcodes"
	"github.com/lucasmedrano/tourmarket-backend/internal/regions"
	"github.com/lucasmedrano/tourmarket-backend/pkg/config"
	"github.com/lucasmedrano/tourmarket-backend/pkg/db"
	"github.com/lucasmedrano/tourmarket-backend/pkg/logger"
	"github.com/lucasmedrano/tourmarket-backend/pkg/mail"
	"github.com/lucasmedrano/tourmarket-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	DB            db.Pinger
	Redis         redis.Pinger
	Mail          *mail.Client
	Regions       regions.Service
	Carts         carts.Service
	QRCodes       qrcodes.Service
	Notifications notifications.Service
	Payments      payments.Service
	AuditLogs     auditlogs.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
		r.Get("/email", controllers.HealthEmail(deps.Mail, logg))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())

		r.Route("/v1/regions", func(r chi.Router) {
			r.Get("/", controllers.RegionList(deps.Regions, logg))
			r.Get("/{slug}", controllers.RegionBySlug(deps.Regions, logg))
		})

		r.Route("/v1/carts", func(r chi.Router) {
			r.Post("/", controllers.CartCreate(deps.Carts, logg))
			r.Route("/{cartId}", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.Carts, logg))
				r.Delete("/", controllers.CartDelete(deps.Carts, logg))
				r.Post("/items", controllers.CartAddItem(deps.Carts, logg))
				r.Patch("/items/{itemId}", controllers.CartUpdateItem(deps.Carts, logg))
				r.Delete("/items/{itemId}", controllers.CartRemoveItem(deps.Carts, logg))
			})
		})

		r.Post("/v1/qr-codes/{codeId}/scan", controllers.QRCodeScan(deps.QRCodes, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Get("/ping", controllers.PrivatePing())

		r.Route("/v1/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(deps.Notifications, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(deps.Notifications, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(deps.Notifications, logg))
		})

		r.Route("/v1/payments", func(r chi.Router) {
			r.Post("/", controllers.PaymentCreate(deps.Payments, logg))
			r.Get("/{paymentId}", controllers.PaymentFetch(deps.Payments, logg))
		})
		r.Get("/v1/orders/{orderId}/payments", controllers.PaymentsByOrder(deps.Payments, logg))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireRole("admin", logg))
		r.Get("/ping", controllers.AdminPing())

		r.Route("/v1/regions", func(r chi.Router) {
			r.Post("/", controllers.RegionCreate(deps.Regions, logg))
			r.Put("/{regionId}", controllers.RegionUpdate(deps.Regions, logg))
			r.Delete("/{regionId}", controllers.RegionDelete(deps.Regions, logg))
		})

		r.Route("/v1/qr-codes", func(r chi.Router) {
			r.Post("/", controllers.QRCodeCreate(deps.QRCodes, logg))
			r.Get("/{codeId}", controllers.QRCodeFetch(deps.QRCodes, logg))
			r.Patch("/{codeId}/active", controllers.QRCodeSetActive(deps.QRCodes, logg))
			r.Get("/{codeId}/scans", controllers.QRCodeScans(deps.QRCodes, logg))
		})

		r.Post("/v1/payments/{paymentId}/review", controllers.PaymentReview(deps.Payments, logg))

		r.Get("/v1/audit-logs", controllers.AdminAuditLogs(deps.AuditLogs, logg))
	})

	return r
}
