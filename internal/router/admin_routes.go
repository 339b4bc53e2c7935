package router

import (
	"github.com/labstack/echo/v4"

	"github.com/mzigo/insurance-brokerage-portal/internal/handler"
	"github.com/mzigo/insurance-brokerage-portal/internal/middleware"
	"github.com/mzigo/insurance-brokerage-portal/internal/model"
)

// RegisterAdmin registers the back-office endpoints under /admin. All routes
// require a valid JWT with the ADMIN or SUPER_ADMIN role; role changes and
// user deletion additionally require SUPER_ADMIN.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, r *handler.ResourceHandler, jwtSecret string) {
	g := e.Group(
		"/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleSuperAdmin),
	)

	// ---- Claims ----
	g.GET("/claims", a.ListClaims)
	g.GET("/claims/:id", a.GetClaim)
	g.PUT("/claims/:id/status", a.UpdateClaimStatus)
	g.DELETE("/claims/:id", a.DeleteClaim)

	// ---- Quotes ----
	g.GET("/quotes", a.ListQuotes)
	g.GET("/quotes/:id", a.GetQuote)
	g.PUT("/quotes/:id/status", a.UpdateQuoteStatus)
	g.DELETE("/quotes/:id", a.DeleteQuote)

	// ---- Consultations ----
	g.GET("/consultations", a.ListConsultations)
	g.GET("/consultations/:id", a.GetConsultation)
	g.PUT("/consultations/:id/schedule", a.ScheduleConsultation)
	g.PUT("/consultations/:id/status", a.UpdateConsultationStatus)
	g.DELETE("/consultations/:id", a.DeleteConsultation)

	// ---- Outsourcing ----
	g.GET("/outsourcing", a.ListOutsourcing)
	g.GET("/outsourcing/:id", a.GetOutsourcing)
	g.PUT("/outsourcing/:id/status", a.UpdateOutsourcingStatus)
	g.DELETE("/outsourcing/:id", a.DeleteOutsourcing)

	// ---- Diaspora ----
	g.GET("/diaspora", a.ListDiaspora)
	g.GET("/diaspora/:id", a.GetDiaspora)
	g.PUT("/diaspora/:id/status", a.UpdateDiasporaStatus)
	g.DELETE("/diaspora/:id", a.DeleteDiaspora)

	// ---- Payments ----
	g.GET("/payments", a.ListPayments)
	g.GET("/payments/:id", a.GetPayment)
	g.PUT("/payments/:id/status", a.UpdatePaymentStatus)
	g.DELETE("/payments/:id", a.DeletePayment)

	// ---- Users ----
	g.GET("/users", a.ListUsers)
	g.GET("/users/:id", a.GetUser)
	g.PUT("/users/:id/role", a.UpdateUserRole, middleware.RequireRole(model.RoleSuperAdmin))
	g.DELETE("/users/:id", a.DeleteUser, middleware.RequireRole(model.RoleSuperAdmin))

	// ---- Resources ----
	g.POST("/resources", r.UploadResource)
	g.DELETE("/resources/:id", r.DeleteResource)

	// ---- Dashboard, export, buffer ----
	g.GET("/dashboard", a.Dashboard)
	g.GET("/export/:entity", a.Export)
	g.POST("/buffer/reset", a.ResetBuffers)
}
