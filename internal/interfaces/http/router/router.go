// Package router wires the handler set onto a gin engine. Route guards are
// layered here, not in the handlers: every /api route runs behind identity
// resolution, entity routes add the read/write split, and the users and
// settings groups are reserved for system administrators.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sltrack/backend/internal/domain/identity"
	"github.com/sltrack/backend/internal/interfaces/http/handler"
	"github.com/sltrack/backend/internal/interfaces/http/middleware"
)

// Handlers collects every handler the router mounts.
type Handlers struct {
	System          *handler.SystemHandler
	Dashboard       *handler.DashboardHandler
	Title           *handler.TitleHandler
	License         *handler.LicenseHandler
	SupportContract *handler.SupportContractHandler
	Manufacturer    *handler.ManufacturerHandler
	Reseller        *handler.ResellerHandler
	Attachment      *handler.AttachmentHandler
	User            *handler.UserHandler
	Setting         *handler.SettingHandler
	Lookup          *handler.LookupHandler
	Report          *handler.ReportHandler
}

// Setup mounts all routes. The health probe stays outside the identity
// middleware; everything under /api requires a resolved user.
func Setup(engine *gin.Engine, h Handlers, identityMW gin.HandlerFunc) {
	engine.GET("/healthz", h.System.Health)

	api := engine.Group("/api", identityMW)

	api.GET("/dashboard", h.Dashboard.Overview)

	entities := api.Group("", middleware.RequireWrite())
	{
		entities.GET("/titles", h.Title.List)
		entities.GET("/titles/:id", h.Title.Get)
		entities.POST("/titles", h.Title.Create)
		entities.PUT("/titles/:id", h.Title.Update)

		entities.GET("/licenses", h.License.List)
		entities.GET("/licenses/:id", h.License.Get)
		entities.POST("/licenses", h.License.Create)
		entities.PUT("/licenses/:id", h.License.Update)
		entities.DELETE("/licenses/:id", h.License.Delete)

		entities.GET("/support-contracts", h.SupportContract.List)
		entities.GET("/support-contracts/:id", h.SupportContract.Get)
		entities.POST("/support-contracts", h.SupportContract.Create)
		entities.PUT("/support-contracts/:id", h.SupportContract.Update)
		entities.DELETE("/support-contracts/:id", h.SupportContract.Delete)

		entities.GET("/manufacturers", h.Manufacturer.List)
		entities.GET("/manufacturers/:id", h.Manufacturer.Get)
		entities.POST("/manufacturers", h.Manufacturer.Create)
		entities.PUT("/manufacturers/:id", h.Manufacturer.Update)
		entities.DELETE("/manufacturers/:id", h.Manufacturer.Delete)

		entities.GET("/resellers", h.Reseller.List)
		entities.GET("/resellers/:id", h.Reseller.Get)
		entities.POST("/resellers", h.Reseller.Create)
		entities.PUT("/resellers/:id", h.Reseller.Update)
		entities.DELETE("/resellers/:id", h.Reseller.Delete)

		entities.GET("/attachments", h.Attachment.List)
		entities.GET("/attachments/:id/download", h.Attachment.Download)
		entities.POST("/attachments", h.Attachment.Upload)
		entities.DELETE("/attachments/:id", h.Attachment.Delete)

		entities.GET("/cost-centers", h.Lookup.CostCenters)
		entities.POST("/cost-centers", h.Lookup.CreateCostCenter)
		entities.GET("/currencies", h.Lookup.Currencies)
	}

	api.GET("/users/current", h.User.Current)

	admin := api.Group("", middleware.RequireRole(identity.RoleSystemAdmin))
	{
		admin.GET("/users", h.User.List)
		admin.GET("/users/:id", h.User.Get)
		admin.POST("/users", h.User.Create)
		admin.PUT("/users/:id", h.User.Update)

		admin.GET("/settings", h.Setting.List)
		admin.PUT("/settings", h.Setting.BulkPut)
		admin.GET("/settings/:key", h.Setting.Get)
		admin.PUT("/settings/:key", h.Setting.Put)
	}

	reports := api.Group("/reports")
	{
		reports.GET("/expirations", h.Report.Expirations)
		reports.GET("/inventory", h.Report.Inventory)
		reports.GET("/spend-by-cost-center", h.Report.SpendByCostCenter)
	}
}
