package main

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/neural-portfolio/internal/config"
	"github.com/Zachkp/neural-portfolio/internal/contact"
	"github.com/Zachkp/neural-portfolio/internal/content"
	"github.com/Zachkp/neural-portfolio/internal/skillgraph"
	"github.com/Zachkp/neural-portfolio/internal/terminal"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Server serves the portfolio page and its small JSON API.
type Server struct {
	cfg       *config.Config
	catalog   *skillgraph.Catalog
	sessions  *sessionStore
	terminal  *terminal.Responder
	assistant *terminal.Responder
}

func NewServer(cfg *config.Config, cat *skillgraph.Catalog) *Server {
	s := &Server{
		cfg:       cfg,
		catalog:   cat,
		terminal:  terminal.Terminal(),
		assistant: terminal.Assistant(),
	}
	s.sessions = newSessionStore(cfg.SessionTTL, cfg.MaxSessions, func() (*skillgraph.Widget, error) {
		return skillgraph.Mount(context.Background(), cat, skillgraph.WithTiming(cfg.Animation))
	})
	return s
}

// Run serves until ctx is canceled, then shuts down and unmounts every
// skill graph session.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Addr(), Handler: s.Router()}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	swept := make(chan struct{})
	go func() {
		s.sessions.run(sweepCtx)
		close(swept)
	}()
	defer func() {
		stopSweep()
		<-swept
	}()

	errc := make(chan error, 1)
	go func() {
		log.Printf("Portfolio listening on %s", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// streams only end once their widgets unmount
	s.sessions.closeAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.CustomRecovery(recoverJSON))

	tmpl := template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatal("Failed to load static assets:", err)
	}
	r.StaticFS("/static", http.FS(static))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	// Home page route
	r.GET("/", s.handleIndex)

	// HTMX fragments
	r.GET("/projects", s.handleProjectsFragment)
	r.GET("/resume/:mode", s.handleResumeFragment)
	r.POST("/terminal", s.handleTerminalFragment)
	r.POST("/assistant", s.handleAssistantFragment)

	// Stateless graph image
	r.GET("/skills/graph.svg", s.handleGraphSVG)

	api := r.Group("/api")
	api.POST("/contact", s.handleContact)
	api.GET("/skills", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.catalog)
	})
	api.GET("/projects", s.handleProjects)
	api.GET("/resume/:mode", s.handleResume)
	api.POST("/terminal", s.handleTerminal)
	api.POST("/assistant", s.handleAssistant)

	sessions := api.Group("/skills/sessions")
	sessions.POST("", s.handleCreateSession)
	sessions.GET("/:id/frame", s.handleSessionFrame)
	sessions.POST("/:id/events", s.handleSessionEvent)
	sessions.GET("/:id/stream", s.handleSessionStream)
	sessions.DELETE("/:id", s.handleDeleteSession)

	return r
}

var templateFuncs = template.FuncMap{
	"svg":  func(s string) template.HTML { return template.HTML(s) },
	"join": strings.Join,
}

func recoverJSON(c *gin.Context, err any) {
	log.Printf("Recovered from panic on %s: %v", c.Request.URL.Path, err)
	if c.Request.URL.Path == "/api/contact" {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to send message"})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func (s *Server) handleIndex(c *gin.Context) {
	frame := skillgraph.Render(s.catalog, skillgraph.DefaultViewState())
	c.HTML(http.StatusOK, "index.html", gin.H{
		"owner":          content.Owner,
		"aboutMe":        content.AboutMe,
		"boot":           terminal.BootTranscript().Lines,
		"greeter":        terminal.GreeterTranscript().Lines,
		"graph":          frame.SVG,
		"categories":     s.catalog.Categories,
		"projects":       content.Projects,
		"shown":          len(content.Projects),
		"total":          len(content.Projects),
		"projectFilters": content.ProjectFilters,
		"modes":          content.Modes,
		"resume":         content.Resume(content.ModeHR),
		"stats":          content.AchievementStats,
		"socialLinks":    content.SocialLinks(s.cfg.ContactEmail),
	})
}

// Handle contact form submission. Nothing is stored or delivered; the page
// opens the returned mailto link.
func (s *Server) handleContact(c *gin.Context) {
	var msg contact.Message
	if err := c.ShouldBind(&msg); err != nil || len(msg.Missing()) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	link, err := contact.Mailto(s.cfg.ContactEmail, msg)
	if err != nil {
		log.Printf("Error composing contact link: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message sent successfully",
		"mailto":  link,
	})
}

func (s *Server) filteredProjects(c *gin.Context) []content.Project {
	projects := content.FilterProjects(content.Projects, c.Query("filter"))
	return content.SearchProjects(projects, c.Query("q"))
}

func (s *Server) handleProjects(c *gin.Context) {
	projects := s.filteredProjects(c)
	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"shown":    len(projects),
		"total":    len(content.Projects),
	})
}

func (s *Server) handleProjectsFragment(c *gin.Context) {
	projects := s.filteredProjects(c)
	c.HTML(http.StatusOK, "projects.html", gin.H{
		"projects": projects,
		"shown":    len(projects),
		"total":    len(content.Projects),
	})
}

func (s *Server) resumeMode(c *gin.Context) (content.Mode, bool) {
	mode, err := content.ParseMode(c.Param("mode"))
	if err != nil {
		return "", false
	}
	return mode, true
}

func (s *Server) handleResume(c *gin.Context) {
	mode, ok := s.resumeMode(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": content.ErrUnknownMode.Error()})
		return
	}
	c.JSON(http.StatusOK, content.Resume(mode))
}

func (s *Server) handleResumeFragment(c *gin.Context) {
	mode, ok := s.resumeMode(c)
	if !ok {
		c.String(http.StatusNotFound, content.ErrUnknownMode.Error())
		return
	}
	c.HTML(http.StatusOK, "resume.html", gin.H{
		"resume": content.Resume(mode),
		"modes":  content.Modes,
	})
}

type terminalRequest struct {
	Command string `json:"command" form:"command" binding:"required"`
}

type assistantRequest struct {
	Message string `json:"message" form:"message" binding:"required"`
}

func (s *Server) handleTerminal(c *gin.Context) {
	var req terminalRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "command is required"})
		return
	}
	c.JSON(http.StatusOK, s.terminal.Respond(req.Command))
}

func (s *Server) handleAssistant(c *gin.Context) {
	var req assistantRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	c.JSON(http.StatusOK, s.assistant.Respond(req.Message))
}

func (s *Server) handleTerminalFragment(c *gin.Context) {
	var req terminalRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Status(http.StatusNoContent)
		return
	}
	var t terminal.Transcript
	reply := t.Exchange(s.terminal, terminal.RoleCommand, terminal.RoleResponse, req.Command)
	c.HTML(http.StatusOK, "transcript.html", gin.H{"lines": t.Lines, "section": reply.Section})
}

func (s *Server) handleAssistantFragment(c *gin.Context) {
	var req assistantRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Status(http.StatusNoContent)
		return
	}
	var t terminal.Transcript
	reply := t.Exchange(s.assistant, terminal.RoleUser, terminal.RoleAI, req.Message)
	c.HTML(http.StatusOK, "transcript.html", gin.H{"lines": t.Lines, "section": reply.Section})
}

// viewStateFromQuery reads angle, zoom, panx, pany, active and category.
func viewStateFromQuery(c *gin.Context) (skillgraph.ViewState, error) {
	state := skillgraph.DefaultViewState()
	floats := []struct {
		key string
		dst *float64
	}{
		{"angle", &state.Angle},
		{"zoom", &state.Zoom},
		{"panx", &state.Pan.X},
		{"pany", &state.Pan.Y},
	}
	for _, f := range floats {
		raw := c.Query(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return state, err
		}
		*f.dst = v
	}
	state.ActiveEntity = c.Query("active")
	state.ActiveCategory = c.Query("category")
	return state, nil
}

func (s *Server) handleGraphSVG(c *gin.Context) {
	state, err := viewStateFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid view parameter: " + err.Error()})
		return
	}
	if _, ok := s.catalog.Entity(state.ActiveEntity); !ok {
		state.ActiveEntity = ""
	}
	frame := skillgraph.Render(s.catalog, state)
	c.Data(http.StatusOK, "image/svg+xml", []byte(frame.SVG))
}

func (s *Server) handleCreateSession(c *gin.Context) {
	id, w, err := s.sessions.create()
	if errors.Is(err, ErrTooManySessions) || errors.Is(err, ErrStoreClosed) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		log.Printf("Error mounting skill graph: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start skill graph"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "frame": w.Frame()})
}

func (s *Server) sessionWidget(c *gin.Context) (*skillgraph.Widget, bool) {
	w, err := s.sessions.get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return w, true
}

func (s *Server) handleSessionFrame(c *gin.Context) {
	w, ok := s.sessionWidget(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, w.Frame())
}

func (s *Server) handleSessionEvent(c *gin.Context) {
	w, ok := s.sessionWidget(c)
	if !ok {
		return
	}
	var ev skillgraph.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "event type is required"})
		return
	}
	switch err := w.Apply(ev); {
	case errors.Is(err, skillgraph.ErrUnknownEvent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, skillgraph.ErrUnmounted):
		c.JSON(http.StatusNotFound, gin.H{"error": ErrSessionNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, w.Frame())
}

// handleSessionStream pushes one SVG frame per change as server-sent events
// until the client goes away or the session is unmounted.
func (s *Server) handleSessionStream(c *gin.Context) {
	id := c.Param("id")
	w, ok := s.sessionWidget(c)
	if !ok {
		return
	}
	changes, stop := w.Subscribe()
	defer stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("frame", w.Frame().SVG)
	c.Writer.Flush()

	c.Stream(func(io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case _, open := <-changes:
			if !open {
				return false
			}
			if _, err := s.sessions.get(id); err != nil {
				return false
			}
			c.SSEvent("frame", w.Frame().SVG)
			return true
		}
	})
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	if err := s.sessions.remove(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
