package bootstrap

import (
	"database/sql"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/inte-real/inte-real-backend/internal/api/http"
	"github.com/inte-real/inte-real-backend/internal/api/http/middleware"
	"github.com/inte-real/inte-real-backend/internal/genimage"
	"github.com/inte-real/inte-real-backend/internal/notify"
	pipelinehttp "github.com/inte-real/inte-real-backend/internal/pipeline/http"
	"github.com/inte-real/inte-real-backend/internal/pipeline/service"
	"github.com/inte-real/inte-real-backend/internal/remote"
	"github.com/inte-real/inte-real-backend/internal/settings"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string

	Projects  *service.ProjectService
	Remote    *remote.Client // nil when sync disabled
	Outbox    *remote.Outbox
	Genimage  *genimage.Client
	Notify    *notify.Store
	Settings  *settings.Service
	ArchiveDB *sql.DB // nil when archive disabled
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	if len(dep.CORSOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = dep.CORSOrigins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-Request-Id")
		r.Use(cors.New(corsCfg))
	}

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.ArchiveDB)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())

	pipelinehttp.New(dep.Projects, dep.Remote, dep.Outbox).Register(api)
	genimage.NewHandler(dep.Genimage).Register(api)
	notify.NewHandler(dep.Notify).Register(api.Group("/notifications"))
	settings.NewHandler(dep.Settings).Register(api.Group("/settings"))

	return r
}
