// Game catalog HTTP handlers (public, read-only).
//
// Catalog writes go through the admin API; see admin_handler.go.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/semihsari152/CoreGameApp-sub007/internal/domain"
	"github.com/semihsari152/CoreGameApp-sub007/internal/services"
)

// GameResponse wraps a single catalog entry.
type GameResponse struct {
	Game *domain.Game `json:"game"`
}

// ListGamesResponse contains a page of catalog entries.
type ListGamesResponse struct {
	Games      []domain.Game `json:"games"`
	Pagination Pagination    `json:"pagination"`
}

// ListGames godoc
// @ID          listGames
// @Summary     List games
// @Tags        Games
// @Produce     json
// @Param       page       query  int  false "Page number"    minimum(1) default(1)
// @Param       page_size  query  int  false "Items per page" minimum(1) maximum(100) default(20)
// @Success     200  {object} handlers.ListGamesResponse
// @Router      /games [get]
func (h *Handlers) ListGames(c *gin.Context) {
	page, pageSize := clampPagination(c)
	items, total, err := h.gameSvc.ListPage(c.Request.Context(), page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ListGamesResponse{Games: items, Pagination: paginate(page, pageSize, total)})
}

// GetGame godoc
// @ID          getGame
// @Summary     Fetch one game by ID or slug
// @Description Accepts either a UUID or a URL slug as the path segment.
// @Tags        Games
// @Produce     json
// @Param       idOrSlug  path  string  true  "Game ID (UUID) or slug"
// @Success     200  {object} handlers.GameResponse
// @Failure     404  {object} handlers.ErrorResponse "Not found"
// @Router      /games/{idOrSlug} [get]
func (h *Handlers) GetGame(c *gin.Context) {
	key := c.Param("idOrSlug")

	g, err := h.gameSvc.Get(c.Request.Context(), key)
	if errors.Is(err, services.ErrGameNotFound) {
		g, err = h.gameSvc.GetBySlug(c.Request.Context(), key)
	}
	if err != nil {
		if errors.Is(err, services.ErrGameNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "game not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, GameResponse{Game: g})
}
