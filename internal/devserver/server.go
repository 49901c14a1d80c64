// Package devserver is a local stand-in for the job directory service. It
// honours the wire contract of the three job routes and nothing more.
package devserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"go-jobboard/internal/filter"
	"go-jobboard/internal/models"
)

// ManualSource marks postings created through POST /jobs.
const ManualSource = "manual"

type Server struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

func New(store Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{store: store, logger: logger, now: time.Now}
}

// Router builds the gin engine serving the job routes and /health.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Job directory stand-in is running!",
			"status":  "healthy",
		})
	})

	jobs := r.Group("/jobs")
	jobs.GET("/not-applied", s.listNotApplied)
	jobs.GET("/search", s.search)
	jobs.POST("", s.postJob)
	return r
}

// listNotApplied returns everything; the stand-in has no viewer state.
func (s *Server) listNotApplied(c *gin.Context) {
	jobs, err := s.store.List(c.Request.Context())
	if err != nil {
		s.fail(c, "list jobs", err)
		return
	}
	c.JSON(http.StatusOK, models.JobsResponse{Jobs: jobs})
}

func (s *Server) search(c *gin.Context) {
	jobs, err := s.store.List(c.Request.Context())
	if err != nil {
		s.fail(c, "search jobs", err)
		return
	}
	c.JSON(http.StatusOK, models.JobsResponse{Jobs: filter.Search(jobs, c.Query("keyword"))})
}

func (s *Server) postJob(c *gin.Context) {
	var payload models.PostJobPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created := s.now().UTC()
	if payload.CreatedAt != "" {
		parsed, err := models.ParseDate(payload.CreatedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid created_at"})
			return
		}
		created = parsed
	}

	job := models.JobRecord{
		Title:       payload.Title,
		Description: payload.Description,
		Skills:      payload.Skills,
		Location:    payload.Location,
		Source:      ManualSource,
		SalaryMin:   float64(*payload.SalaryMin),
		SalaryMax:   float64(*payload.SalaryMax),
		CreatedAt:   models.Timestamp{Time: created},
	}
	if err := s.store.Add(c.Request.Context(), job); err != nil {
		s.fail(c, "add job", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"job": job})
}

func (s *Server) fail(c *gin.Context, op string, err error) {
	s.logger.Error("store failure", slog.String("op", op), slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// requestLog echoes X-Request-ID, minting one when absent, and logs the request.
func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)

		c.Next()

		s.logger.Info("request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
			slog.String("request_id", id),
		)
	}
}
