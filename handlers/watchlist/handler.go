package watchlist

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	cs "github.com/webtor-io/common-services"

	"github.com/reelgrid-io/web-api/models"
	"github.com/reelgrid-io/web-api/services/content"
)

type Handler struct {
	pg         *cs.PG
	aggregator *content.Aggregator
}

func RegisterHandler(r *gin.Engine, pg *cs.PG, aggregator *content.Aggregator) {
	h := &Handler{
		pg:         pg,
		aggregator: aggregator,
	}
	r.GET("/api/users/:user_id/watchlist", h.index)
	r.POST("/api/users/:user_id/watchlist", h.add)
	r.DELETE("/api/users/:user_id/watchlist/:type/:content_id", h.remove)
	r.GET("/api/users/:user_id/watchlist/:type/:content_id", h.isPresent)
	r.GET("/api/users/:user_id/watchlist/recommendations", h.recommendations)
}

type addRequest struct {
	ContentID string `json:"content_id" binding:"required"`
	Type      string `json:"type" binding:"required"`
	Title     string `json:"title"`
	Poster    string `json:"poster"`
}

func (h *Handler) index(c *gin.Context) {
	uID, ok := h.userID(c)
	if !ok {
		return
	}
	db := h.pg.Get()
	if db == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no db"})
		return
	}
	movies, shows, err := models.GetWatchlist(c.Request.Context(), db, uID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if movies == nil {
		movies = []*models.WatchlistItem{}
	}
	if shows == nil {
		shows = []*models.WatchlistItem{}
	}
	c.JSON(http.StatusOK, gin.H{"movies": movies, "shows": shows})
}

func (h *Handler) add(c *gin.Context) {
	uID, ok := h.userID(c)
	if !ok {
		return
	}
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errors.Wrap(err, "invalid request").Error()})
		return
	}
	t, ok := parseType(req.Type)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be movie or show"})
		return
	}
	db := h.pg.Get()
	if db == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no db"})
		return
	}
	item := &models.WatchlistItem{
		UserID:    uID,
		ContentID: req.ContentID,
		Type:      t,
		Title:     req.Title,
		Poster:    req.Poster,
	}
	if err := models.AddToWatchlist(c.Request.Context(), db, item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) remove(c *gin.Context) {
	uID, ok := h.userID(c)
	if !ok {
		return
	}
	t, ok := parseType(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be movie or show"})
		return
	}
	db := h.pg.Get()
	if db == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no db"})
		return
	}
	err := models.RemoveFromWatchlist(c.Request.Context(), db, uID, c.Param("content_id"), t)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) isPresent(c *gin.Context) {
	uID, ok := h.userID(c)
	if !ok {
		return
	}
	t, ok := parseType(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be movie or show"})
		return
	}
	db := h.pg.Get()
	if db == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no db"})
		return
	}
	present, err := models.IsInWatchlist(c.Request.Context(), db, uID, c.Param("content_id"), t)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"present": present})
}

func (h *Handler) recommendations(c *gin.Context) {
	uID, ok := h.userID(c)
	if !ok {
		return
	}
	db := h.pg.Get()
	if db == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no db"})
		return
	}
	movies, shows, err := models.GetWatchlist(c.Request.Context(), db, uID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	results := h.aggregator.AggregateForWatchlist(c.Request.Context(), uID, movies, shows)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *Handler) userID(c *gin.Context) (uuid.UUID, bool) {
	uID, err := uuid.FromString(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return uuid.UUID{}, false
	}
	return uID, true
}

func parseType(raw string) (models.ContentType, bool) {
	switch raw {
	case "movie":
		return models.ContentTypeMovie, true
	case "show":
		return models.ContentTypeShow, true
	}
	return "", false
}
