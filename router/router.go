package router

import (
	"io/fs"
	"log"
	"mime"
	"net/http"
	"path"
	"strings"

	"fintrack/api"
	"fintrack/config"
	_ "fintrack/docs"
	"fintrack/identity"
	"fintrack/web"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter wires the auth and transaction gateways, the embedded frontend
// and the SPA fallback.
func SetupRouter(cfg *config.Config, provider identity.Provider) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	r.Use(CORSMiddleware())

	staticFS, _ := fs.Sub(web.StaticFS, "static")
	r.GET("/", func(c *gin.Context) {
		serveStaticFile(c, staticFS, "index.html")
	})

	authHandler := api.NewAuthHandler(provider)
	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	txHandler := api.NewTransactionHandler()
	exportHandler := api.NewExportHandler()
	tx := r.Group("/api/transactions")
	{
		tx.POST("/income", txHandler.AddIncome)
		tx.POST("/expense", txHandler.AddExpense)
		tx.GET("/:userId", txHandler.List)
		tx.GET("/:userId/summary", txHandler.Summary)
		tx.GET("/:userId/export/csv", exportHandler.ExportCSV)
		tx.GET("/:userId/export/excel", exportHandler.ExportExcel)
		tx.DELETE("/:type/:id", txHandler.Delete)
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Unmatched transaction routes answer JSON 404, other API paths a generic
	// 404, and everything else falls through to the SPA entry page.
	r.NoRoute(func(c *gin.Context) {
		p := c.Request.URL.Path
		if strings.HasPrefix(p, "/api/transactions") {
			log.Printf("route not found: %s %s", c.Request.Method, p)
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found under /api/transactions"})
			return
		}
		if strings.HasPrefix(p, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
			return
		}

		name := strings.TrimPrefix(p, "/")
		if name != "" {
			if content, err := fs.ReadFile(staticFS, name); err == nil {
				c.Data(http.StatusOK, contentTypeFor(name), content)
				return
			}
		}
		serveStaticFile(c, staticFS, "index.html")
	})

	return r
}

func serveStaticFile(c *gin.Context, staticFS fs.FS, name string) {
	content, err := fs.ReadFile(staticFS, name)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load page")
		return
	}
	c.Data(http.StatusOK, contentTypeFor(name), content)
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// CORSMiddleware allows cross-origin requests from any origin.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
