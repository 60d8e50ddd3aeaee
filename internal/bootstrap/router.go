package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/sitee-labs/sitee-backend/internal/api/http"
	"github.com/sitee-labs/sitee-backend/internal/api/http/middleware"
	"github.com/sitee-labs/sitee-backend/internal/credits"
	genhttp "github.com/sitee-labs/sitee-backend/internal/generation/http"
	genservice "github.com/sitee-labs/sitee-backend/internal/generation/service"
	historyhttp "github.com/sitee-labs/sitee-backend/internal/history/http"
	historyrepo "github.com/sitee-labs/sitee-backend/internal/history/repository"
	"github.com/sitee-labs/sitee-backend/internal/publish"
	publishhttp "github.com/sitee-labs/sitee-backend/internal/publish/http"
	"github.com/sitee-labs/sitee-backend/internal/store"
	usershttp "github.com/sitee-labs/sitee-backend/internal/users/http"
	"github.com/sitee-labs/sitee-backend/internal/users/repository"

	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	ServiceName  string
	Version      string
	Store        store.Store
	Orchestrator *genservice.Orchestrator
	Publisher    *publish.Client
	History      *historyrepo.Repo
	Redis        *redis.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-Id"}
	r.Use(cors.New(corsCfg))
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store, dep.Redis)
	healthHandler.RegisterRoutes(r)

	userRepo := repository.NewRepo(dep.Store)
	ledger := credits.NewLedger(userRepo)

	usershttp.New(userRepo).Register(r)
	genhttp.New(userRepo, ledger, dep.Orchestrator, dep.History).Register(r)
	publishhttp.New(userRepo, dep.Publisher).Register(r)
	historyhttp.New(userRepo, dep.History).Register(r)

	return r
}
