package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	iauth "github.com/sigpat/sigpat/internal/auth"
	"github.com/sigpat/sigpat/internal/handlers"
	"github.com/sigpat/sigpat/internal/lookup"
	"github.com/sigpat/sigpat/internal/middleware"
	"github.com/sigpat/sigpat/internal/models"
	"github.com/sigpat/sigpat/internal/services"
	"github.com/sigpat/sigpat/internal/uniqueness"
	"github.com/sigpat/sigpat/pkg/response"
)

// Options carries the tunables the router needs beyond its services.
type Options struct {
	ValidationDebounce time.Duration
	LookupTimeout      time.Duration
}

// NewRouter builds the Gin engine, wires middleware and registers the
// registry routes: one CRUD+lifecycle+history block per entity, the
// uniqueness validation surface, and the auth endpoints.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, opts Options) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}

	audit, err := services.NewAuditRecorder(db)
	if err != nil {
		return nil, err
	}

	orgaos, err := services.NewEntityService[models.Orgao, *models.Orgao](db, audit, models.OrgaoEntity)
	if err != nil {
		return nil, err
	}
	unidades, err := services.NewEntityService[models.Unidade, *models.Unidade](db, audit, models.UnidadeEntity)
	if err != nil {
		return nil, err
	}
	areas, err := services.NewEntityService[models.Area, *models.Area](db, audit, models.AreaEntity)
	if err != nil {
		return nil, err
	}
	fontes, err := services.NewEntityService[models.FonteRecurso, *models.FonteRecurso](db, audit, models.FonteRecursoEntity)
	if err != nil {
		return nil, err
	}
	usuarios, err := services.NewEntityService[models.Usuario, *models.Usuario](db, audit, models.UsuarioEntity)
	if err != nil {
		return nil, err
	}

	lifecycle, err := services.NewLifecycleService(db, orgaos, unidades)
	if err != nil {
		return nil, err
	}

	checker, err := uniqueness.NewChecker(db)
	if err != nil {
		return nil, err
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	r.NoRoute(middleware.NotFoundHandler)

	// Public endpoints
	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handlers.NewAuthHandler(db, jwt)
	r.POST("/api/auth/login", authHandler.Login)

	// Protected routes
	api := r.Group("/api")
	api.Use(middleware.Auth(jwt))

	api.GET("/auth/me", authHandler.Me)

	handlers.NewEntityHandler(orgaos).WithLifecycle(lifecycle).Register(api, "orgaos")
	handlers.NewEntityHandler(unidades).Register(api, "unidades")
	handlers.NewEntityHandler(areas).Register(api, "areas")
	handlers.NewEntityHandler(fontes).Register(api, "fontes-recurso")
	handlers.NewEntityHandler(usuarios).Register(api, "usuarios")

	validation := handlers.NewValidationHandler(checker, opts.ValidationDebounce)
	api.GET("/validate/unique", validation.CheckUnique)
	api.GET("/validate/ws", validation.Stream)

	cep := lookup.NewCEPClient(lookup.WithTimeout(opts.LookupTimeout))
	api.GET("/lookup/cep/:cep", handlers.NewLookupHandler(cep).CEP)

	return r, nil
}
