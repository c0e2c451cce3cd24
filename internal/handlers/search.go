package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/lookforrecipes/internal/service"
)

// SearchHandler handles recipe search requests.
type SearchHandler struct {
	Service *service.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{Service: searchService}
}

// SearchRecipes handles GET /api/recipe?search=...&count=1
func (h *SearchHandler) SearchRecipes(c *gin.Context) {
	search := c.Query("search")
	keyword := strings.ToLower(strings.TrimSpace(search))
	if keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'search' is required"})
		return
	}

	count := 1
	if countStr := c.Query("count"); countStr != "" {
		if parsed, err := strconv.Atoi(countStr); err == nil && parsed > 0 {
			count = min(parsed, h.Service.Cfg.MaxCandidates())
		}
	}

	results := h.Service.FindCandidates(c.Request.Context(), keyword, count)
	c.JSON(http.StatusOK, gin.H{
		"search": search,
		"result": results,
	})
}
