package server

import (
	"net/http"

	"em-check/internal/config"
	"em-check/internal/database"
	"em-check/internal/db"
	"em-check/internal/handlers"
	"em-check/internal/middleware"
	"em-check/internal/models"
	"em-check/internal/repository"
	"em-check/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func NewRouter(cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Static("/static", "./web/static")
	r.LoadHTMLGlob("web/templates/*.html")

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("em_check_session", store))

	r.Use(middleware.InjectUser())

	userRepo := repository.NewGormUserRepository(database.DB)
	templateRepo := repository.NewGormTemplateRepository(database.DB)
	recordRepo := repository.NewGormRecordRepository(database.DB)
	tx := db.NewGormTransactor(database.DB)

	h := handlers.New(
		service.NewAuthService(userRepo),
		service.NewUserService(tx).WithUserRepo(userRepo),
		service.NewTemplateService(templateRepo),
		service.NewRecordService(recordRepo, templateRepo),
	)

	// AUTH
	r.GET("/register", h.ShowRegister)
	r.POST("/register", h.Register)
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)

	auth := r.Group("/")
	auth.Use(middleware.RequireAuth())

	auth.GET("/", h.Home)
	auth.GET("/logout", h.Logout)

	// USER ADMINISTRATION
	admin := auth.Group("/admin")
	admin.GET("/users",
		middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin),
		h.ListUsers,
	)
	admin.POST("/change_role/:id",
		middleware.RequireRole(models.RoleSuperAdmin),
		h.ChangeRole,
	)
	admin.POST("/change_team/:id",
		middleware.RequireRole(models.RoleSuperAdmin),
		h.ChangeTeam,
	)

	// CHECK TEMPLATES AND RECORDS
	check := auth.Group("/check")
	check.GET("/templates", h.ListTemplates)

	check.GET("/create_template",
		middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin),
		h.ShowCreateTemplate,
	)
	check.POST("/create_template",
		middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin),
		h.CreateTemplate,
	)

	// team-level edit authorization happens in the service
	check.GET("/edit_template/:id", h.ShowEditTemplate)
	check.POST("/edit_template/:id", h.UpdateTemplate)

	check.GET("/records", h.ListRecords)
	check.GET("/create_record/:template_id", h.ShowCreateRecord)
	check.POST("/create_record/:template_id", h.CreateRecord)
	check.GET("/view_record/:id", h.ViewRecord)

	check.GET("/edit_record/:id",
		middleware.RequireRole(models.RoleSuperAdmin),
		h.ShowEditRecord,
	)
	check.POST("/edit_record/:id",
		middleware.RequireRole(models.RoleSuperAdmin),
		h.UpdateRecord,
	)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
