package catalog

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/webtor-io/lazymap"

	"github.com/reelgrid-io/web-api/models"
	"github.com/reelgrid-io/web-api/services/content"
	"github.com/reelgrid-io/web-api/services/tmdb"
)

var movieLists = map[string]bool{
	"now_playing": true,
	"top_rated":   true,
	"upcoming":    true,
	"trending":    true,
}

var showLists = map[string]bool{
	"airing_today": true,
	"on_the_air":   true,
	"top_rated":    true,
	"trending":     true,
}

type Handler struct {
	api   *tmdb.Api
	cache *lazymap.LazyMap[[]models.Content]
}

func RegisterHandler(r *gin.Engine, api *tmdb.Api) {
	h := &Handler{
		api: api,
		cache: lazymap.New[[]models.Content](&lazymap.Config{
			Expire:      5 * time.Minute,
			ErrorExpire: 30 * time.Second,
		}),
	}
	r.GET("/api/movies/catalog/:list", h.movieCatalog)
	r.GET("/api/shows/catalog/:list", h.showCatalog)
	r.GET("/api/movies/trending", h.movieTrending)
	r.GET("/api/shows/trending", h.showTrending)
	r.GET("/api/search", h.search)
}

func (h *Handler) movieCatalog(c *gin.Context) {
	h.catalog(c, models.ContentTypeMovie, movieLists)
}

func (h *Handler) showCatalog(c *gin.Context) {
	h.catalog(c, models.ContentTypeShow, showLists)
}

func (h *Handler) movieTrending(c *gin.Context) {
	h.serveList(c, models.ContentTypeMovie, "trending")
}

func (h *Handler) showTrending(c *gin.Context) {
	h.serveList(c, models.ContentTypeShow, "trending")
}

func (h *Handler) catalog(c *gin.Context, t models.ContentType, valid map[string]bool) {
	list := c.Param("list")
	if !valid[list] {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown catalog list: %s", list)})
		return
	}
	h.serveList(c, t, list)
}

func (h *Handler) serveList(c *gin.Context, t models.ContentType, list string) {
	key := fmt.Sprintf("%s_%s", t, list)
	results, err := h.cache.Get(key, func() ([]models.Content, error) {
		resp, err := h.fetchCatalog(c.Request.Context(), t, list)
		if err != nil {
			return nil, err
		}
		// Catalog listings substitute the current year for records without
		// a usable date.
		return content.NormalizeAll(resp.Results, &t, content.YearModeLenient), nil
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (h *Handler) fetchCatalog(ctx context.Context, t models.ContentType, list string) (*tmdb.CatalogResponse, error) {
	if list == "trending" {
		return h.api.GetTrending(ctx, t)
	}
	return h.api.GetCatalog(ctx, t, list)
}

func (h *Handler) search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	// The search path is the only genuinely untyped one: without an explicit
	// type the multi search is used and each record is classified from its
	// own shape.
	var hint *models.ContentType
	switch c.Query("type") {
	case "movie":
		t := models.ContentTypeMovie
		hint = &t
	case "show":
		t := models.ContentTypeShow
		hint = &t
	case "":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be movie or show"})
		return
	}

	resp, err := h.api.Search(c.Request.Context(), query, hint)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	raws := resp.Results
	if hint == nil {
		// Multi search mixes in person records; only movie and show shapes
		// are browsable content.
		filtered := make([]tmdb.RawRecord, 0, len(raws))
		for _, raw := range raws {
			if raw.MediaType == "movie" || raw.MediaType == "tv" {
				filtered = append(filtered, raw)
			}
		}
		raws = filtered
	}
	c.JSON(http.StatusOK, gin.H{
		"results":       content.NormalizeAll(raws, hint, content.YearModeStrict),
		"page":          resp.Page,
		"total_pages":   resp.TotalPages,
		"total_results": resp.TotalResults,
	})
}
