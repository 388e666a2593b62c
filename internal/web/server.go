// Package web serves the itinerary as HTML pages and a JSON API.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/itinerary/internal/domain"
	"github.com/alexanderramin/itinerary/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type Config struct {
	Title      string
	Subtitle   string
	Categories domain.CategorySet

	// User and Password enable HTTP basic auth when Password is set.
	User     string
	Password string

	CORSOrigins []string
	Location    *time.Location

	// Account is shown in setup guidance as the address to share the
	// spreadsheet with.
	Account string
	// Unavailable, when set, is the connection error every page reports.
	Unavailable error
}

type Server struct {
	plans  service.PlanService
	cfg    Config
	logger *slog.Logger
	notes  *notesRenderer
	tmpl   *template.Template
	now    func() time.Time
}

// NewServer parses the embedded templates. plans may be nil only when
// cfg.Unavailable is set.
func NewServer(plans service.PlanService, cfg Config, logger *slog.Logger) (*Server, error) {
	if plans == nil && cfg.Unavailable == nil {
		return nil, fmt.Errorf("web: no plan service")
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if len(cfg.Categories.Entries()) == 0 {
		cfg.Categories = domain.DefaultCategories()
	}
	if logger == nil {
		logger = slog.Default()
	}
	tmpl, err := template.New("").Funcs(template.FuncMap{"dict": dict}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Server{
		plans:  plans,
		cfg:    cfg,
		logger: logger,
		notes:  newNotesRenderer(),
		tmpl:   tmpl,
		now:    time.Now,
	}, nil
}

// Handler builds the gin engine with every route.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger), securityHeaders())
	r.SetHTMLTemplate(s.tmpl)

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsCfg.MaxAge = 12 * time.Hour
	if len(s.cfg.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = s.cfg.CORSOrigins
		corsCfg.AllowCredentials = true
	} else {
		corsCfg.AllowAllOrigins = true
	}

	r.GET("/api/health", s.apiHealth)

	var auth []gin.HandlerFunc
	if s.cfg.Password != "" {
		auth = append(auth, gin.BasicAuthForRealm(gin.Accounts{s.cfg.User: s.cfg.Password}, s.cfg.Title))
	}

	app := r.Group("/", auth...)
	static, _ := fs.Sub(staticFS, "static")
	app.StaticFS("/static", http.FS(static))
	app.GET("/", s.index)
	app.POST("/plans", s.createPlan)
	app.POST("/plans/:id", s.updatePlan)
	app.POST("/plans/:id/delete", s.deletePlan)

	api := r.Group("/api", append([]gin.HandlerFunc{cors.New(corsCfg)}, auth...)...)
	{
		api.GET("/plans", s.apiList)
		api.POST("/plans", s.apiCreate)
		api.GET("/plans/:id", s.apiGet)
		api.PUT("/plans/:id", s.apiUpdate)
		api.DELETE("/plans/:id", s.apiDelete)
		api.GET("/summary", s.apiSummary)
	}
	// Preflight requests carry no credentials.
	r.OPTIONS("/api/*path", cors.New(corsCfg))
	return r
}
