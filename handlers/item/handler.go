package item

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/reelgrid-io/web-api/models"
	"github.com/reelgrid-io/web-api/services/content"
)

type Handler struct {
	fetcher  *content.Fetcher
	resolver *content.Resolver
}

func RegisterHandler(r *gin.Engine, fetcher *content.Fetcher, resolver *content.Resolver) {
	h := &Handler{
		fetcher:  fetcher,
		resolver: resolver,
	}
	r.GET("/api/movies/:id", h.movieDetails)
	r.GET("/api/movies/:id/recommendations", h.movieRecommendations)
	r.GET("/api/shows/:id", h.showDetails)
	r.GET("/api/shows/:id/recommendations", h.showRecommendations)
}

func (h *Handler) movieDetails(c *gin.Context) {
	h.details(c, models.ContentTypeMovie)
}

func (h *Handler) showDetails(c *gin.Context) {
	h.details(c, models.ContentTypeShow)
}

// details serves the full record for one opened item: the detail and credits
// records are fetched together and folded into a single normalized response.
// Failures here have no partial result to fall back to, so they surface to
// the caller for a retry.
func (h *Handler) details(c *gin.Context, t models.ContentType) {
	id := c.Param("id")
	bundle, err := h.fetcher.FetchBundle(c.Request.Context(), id, t)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	item := content.Normalize(bundle.Details, &t, content.YearModeLenient)
	content.ApplyCredits(&item, bundle.Credits)
	c.JSON(http.StatusOK, item)
}

func (h *Handler) movieRecommendations(c *gin.Context) {
	h.recommendations(c, models.ContentTypeMovie)
}

func (h *Handler) showRecommendations(c *gin.Context) {
	h.recommendations(c, models.ContentTypeShow)
}

func (h *Handler) recommendations(c *gin.Context, t models.ContentType) {
	id := c.Param("id")
	results, err := h.resolver.ResolveRecommendations(c.Request.Context(), id, t)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
