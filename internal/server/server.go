// Package server serves the portfolio page and the live channels behind its
// scroll effects and hero animation.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/typing"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Server is the HTTP front of the portfolio.
type Server struct {
	cfg       *config.Config
	portfolio *content.Portfolio
	scheduler typing.Scheduler
	visitors  *visitorLog
	router    *gin.Engine
}

// New builds the router for portfolio p.
func New(cfg *config.Config, p *content.Portfolio) (*Server, error) {
	gin.SetMode(cfg.Server.Mode)

	s := &Server{
		cfg:       cfg,
		portfolio: p,
		scheduler: typing.RealScheduler(),
		visitors:  newVisitorLog(),
	}

	r, err := s.buildRouter()
	if err != nil {
		return nil, err
	}
	s.router = r
	return s, nil
}

func (s *Server) buildRouter() (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), s.visitors.middleware())

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}
	r.StaticFS("/static", http.FS(static))

	if dir := s.cfg.Server.Images; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			r.Static("/images", dir)
		} else {
			log.Printf("Images directory %s not found, /images disabled", dir)
		}
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Page and HTMX fragments
	r.GET("/", s.handleIndex)
	r.GET("/experience-content", s.handleExperience)
	r.GET("/education-content", s.handleEducation)
	r.GET("/contact-form", s.handleContactForm)
	r.POST("/contact", s.handleContact)
	r.POST("/theme", s.handleTheme)

	// Live channels
	r.GET("/hero/roles", s.handleRoles)
	r.GET("/ws/scroll", s.handleScrollSocket)

	return r, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully. Open
// role streams end when shutdown starts.
func (s *Server) Run(ctx context.Context) error {
	base, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()

	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return base },
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	log.Printf("Portfolio listening on %s", srv.Addr)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	cancelBase()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// recipient is where contact mail goes.
func (s *Server) recipient() string {
	if s.cfg.Contact.Email != "" {
		return s.cfg.Contact.Email
	}
	return s.portfolio.Profile.Email
}

var templateFuncs = template.FuncMap{
	"markdown": content.HTML,
	"mailto":   contact.Compose,
	"join":     strings.Join,
	"lower":    strings.ToLower,
	"title":    title,
	"inc":      func(i int) int { return i + 1 },
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
