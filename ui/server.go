package ui

import (
	"context"
	"embed"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tradenet/app"
	"tradenet/domain/commodity"
	"tradenet/internal/config"
	"tradenet/internal/session"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// Server is the dashboard web server.
type Server struct {
	router     *gin.Engine
	dashboards *app.DashboardService
	filters    *app.FilterService
	sessions   *session.Store
	catalog    *commodity.Catalog
	templates  *template.Template
}

// NewServer wires the gin router, templates, and route table.
func NewServer(cfg config.ServerConfig, dashboards *app.DashboardService, filters *app.FilterService, sessions *session.Store) (*Server, error) {
	gin.SetMode(cfg.GinMode)

	templates, err := template.ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:     gin.Default(),
		dashboards: dashboards,
		filters:    filters,
		sessions:   sessions,
		catalog:    filters.Catalog(),
		templates:  templates,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.SetHTMLTemplate(s.templates)
	s.router.Use(s.sessionMiddleware())

	s.router.GET("/", s.handleIndex)
	s.router.StaticFS("/static", http.FS(mustSub(embeddedFiles, "static")))

	api := s.router.Group("/api")
	{
		api.GET("/map", s.handleMap)
		api.GET("/rankings", s.handleRankings)
		api.GET("/state/:abbr", s.handleStateDetail)
		api.GET("/stats", s.handleStats)
		api.GET("/commodities", s.handleCommodities)
		api.GET("/guide", s.handleGuide)
		api.GET("/export/rankings.xlsx", s.handleExportRankings)

		sess := api.Group("/session")
		{
			sess.GET("", s.handleSession)
			sess.POST("/mode", s.handleSetMode)
			sess.POST("/boundary", s.handleSetBoundary)
			sess.POST("/measure", s.handleSetMeasure)
			sess.POST("/commodity", s.handleSetCommodity)
			sess.POST("/theme", s.handleSetTheme)
			sess.POST("/threshold", s.handleSetThreshold)
			sess.POST("/select", s.handleSelect)
			sess.POST("/edges", s.handleEdgeOverlay)
		}
	}
}

// Router exposes the underlying handler, for tests and for mounting.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("[Server] dashboard listening on %s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Printf("[Server] shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	state := currentState(c)
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title": "Interstate Trade Network",
		"Theme": state.Theme,
	})
}
