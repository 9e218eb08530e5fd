package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/service"
)

type handlers struct {
	svcs *service.Services
}

// Register mounts every route on app.
func Register(app *fiber.App, svcs *service.Services) {
	h := &handlers{svcs: svcs}
	app.Use(requestLogger, recover.New())

	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	authed := protect(svcs.Identity)
	admin := []fiber.Handler{authed, requireRole(domain.RoleAdmin)}

	api.Post("/states", h.createState)
	api.Get("/states", h.listStates)
	api.Put("/states/:id", h.renameState)
	api.Post("/rivers", h.createRiver)
	api.Get("/rivers/:stateId", h.listRivers)
	api.Put("/rivers/:id", h.renameRiver)
	api.Post("/dams", h.createDam)
	api.Get("/dams/:riverId", h.listDams)
	api.Get("/dam/:id", h.getDam)
	api.Get("/core/:damId", h.getCoreDamInfo)
	api.Put("/core/:damId", h.saveCoreDamInfo)

	api.Post("/dam/:damId/status", h.recordSample)
	api.Put("/dam/:damId/status", h.setCurrentStatus)
	api.Get("/dam/:damId/status", h.latestStatus)
	api.Get("/dam/:damId/status/history", h.statusHistory)

	features := api.Group("/features")
	features.Get("/", h.listFeatures)
	features.Post("/", append(admin, h.createFeature)...)
	features.Put("/:id", append(admin, h.updateFeature)...)
	features.Delete("/:id", append(admin, h.deleteFeature)...)
	features.Get("/history/:damId", append(admin, h.eventHistory)...)
	features.Get("/report/:damId", append(admin, h.report)...)
	features.Post("/report/:damId/export", append(admin, h.exportReport)...)

	api.Post("/safety/dam/:id", h.createSafety)
	api.Get("/safety/dam/:id", h.getSafety)
	api.Put("/safety/dam/:id", h.upsertSafety)

	api.Post("/sensors", h.createSensor)
	api.Get("/sensors", h.listSensors)
	api.Put("/sensors/:id", h.updateSensor)
	api.Delete("/sensors/:id", h.deleteSensor)

	api.Post("/supporting-info/dam/:damId", h.createInfo)
	api.Get("/supporting-info/dam/:damId", h.listInfo)
	api.Put("/supporting-info/:id", h.updateInfo)
	api.Delete("/supporting-info/:id", h.deleteInfo)

	api.Post("/water-usage", h.createUsage)
	api.Get("/water-usage", h.listUsage)
	api.Get("/water-usage/dam/:damId", h.usageByDam)
	api.Get("/water-usage/state/:stateName", h.usageByState)
	api.Get("/water-usage/river/:riverId", h.usageByRiver)
	api.Put("/water-usage/:id", h.updateUsage)
	api.Delete("/water-usage/:id", h.deleteUsage)

	users := api.Group("/users")
	users.Post("/register", h.register)
	users.Post("/login", h.login)
	users.Post("/refresh", h.refresh)
	users.Get("/profile", authed, h.profile)
	users.Get("/saved-dams", authed, h.savedDams)
	users.Patch("/saved-dams/:damId", authed, h.toggleSavedDam)

	wf := api.Group("/waterflow")
	wf.Get("/states", h.listStates)
	wf.Get("/rivers/:stateId", h.listRivers)
	wf.Get("/dams/:riverId", h.listDams)
	wf.Get("/geo/india", h.indiaGeoJSON)
	wf.Get("/geo/state/:stateId", h.stateGeoJSON)
	wf.Get("/geo/river/:riverId", h.riverGeoJSON)
	wf.Get("/dam-points", h.allDamPoints)
	wf.Get("/dam-points/state/:stateId", h.damPointsByState)
	wf.Get("/dam-points/:riverId", h.damPointsByRiver)
	wf.Get("/state-stats/:stateId", h.stateStats)
	wf.Get("/river-stats/:riverId", h.riverStats)
	wf.Get("/dam/:damId", h.damDetails)
}
