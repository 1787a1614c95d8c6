package router

import (
	codeshandler "twse_codes/internal/feature/codes/transport/handler"
	platformhandler "twse_codes/internal/platform/http/handler"

	"github.com/gin-gonic/gin"
)

func NewRouter(codes *codeshandler.CodesHandler, download *codeshandler.DownloadHandler) *gin.Engine {
	r := gin.Default()

	// liveness probe
	r.GET("/healthz", platformhandler.Health)

	// persisted snapshot, filtered by category and detail level
	r.GET("/codes", codes.List)

	// re-crawl the listings and replace the snapshot
	r.POST("/codes/refresh", download.Refresh)

	return r
}
