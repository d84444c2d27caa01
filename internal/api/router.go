package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"go-jobpilot-scraper/internal/browser"
	"go-jobpilot-scraper/internal/scraper"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Searcher runs one job search. *scraper.Runner implements it.
type Searcher interface {
	Search(ctx context.Context, query string) ([]scraper.Job, error)
}

type searchRequest struct {
	Query    string   `json:"query"`
	Skills   []string `json:"skills"`
	Industry string   `json:"industry"`
}

type searchResult struct {
	ID      string        `json:"id"`
	Query   string        `json:"query"`
	Count   int           `json:"count"`
	Jobs    []scraper.Job `json:"jobs"`
	Message string        `json:"message"`
}

type Handler struct {
	searcher Searcher
}

func NewHandler(s Searcher) *Handler {
	return &Handler{searcher: s}
}

// NewRouter returns the gin engine serving health and search routes.
func NewRouter(s Searcher) *gin.Engine {
	h := NewHandler(s)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", h.Health)
	r.GET("/health", h.Health)

	jobs := r.Group("/api/jobs")
	jobs.GET("/search", h.SearchGet)
	jobs.POST("/search", h.SearchPost)
	return r
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "healthy",
	})
}

func (h *Handler) SearchGet(c *gin.Context) {
	h.search(c, c.Query("q"))
}

func (h *Handler) SearchPost(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "invalid request body"})
		return
	}

	query := req.Query
	if strings.TrimSpace(query) == "" {
		query = scraper.BuildQuery(req.Skills, req.Industry)
	}
	h.search(c, query)
}

func (h *Handler) search(c *gin.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": "query is required"})
		return
	}

	jobs, err := h.searcher.Search(c.Request.Context(), query)
	if err != nil {
		status, message := errorResponse(err)
		log.Printf("❌ Search %q failed (%d): %v", query, status, err)
		c.JSON(status, gin.H{"status": false, "message": message})
		return
	}

	message := "no jobs found, try again"
	if len(jobs) > 0 {
		message = fmt.Sprintf("showing %d jobs", len(jobs))
	}
	c.JSON(http.StatusOK, gin.H{
		"status": true,
		"data": searchResult{
			ID:      uuid.NewString(),
			Query:   query,
			Count:   len(jobs),
			Jobs:    jobs,
			Message: message,
		},
	})
}

// errorResponse maps a search error to a status code and a message that is safe to
// show users. Underlying browser errors stay in the logs.
func errorResponse(err error) (int, string) {
	var connErr *browser.ConnectionError
	var timeoutErr *scraper.TimeoutError
	switch {
	case errors.Is(err, scraper.ErrEmptyQuery):
		return http.StatusBadRequest, "query is required"
	case errors.As(err, &connErr):
		return http.StatusBadGateway, "browser service unavailable, try again later"
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "job search timed out, try again"
	default:
		return http.StatusInternalServerError, "failed to fetch jobs"
	}
}
