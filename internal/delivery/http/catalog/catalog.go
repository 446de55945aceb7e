package http_catalog

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/filmorate/internal/delivery/http/common"
	usecase_catalog "github.com/humanbelnik/filmorate/internal/usecase/catalog"
)

type EntryDTO struct {
	ID   int    `json:"id" example:"1"`
	Name string `json:"name" example:"G"`
}

type Controller struct {
	uc *usecase_catalog.Usecase

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_catalog.Usecase, opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:     uc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/mpa", c.getRatings)
	router.GET("/mpa/:id", c.getRating)
	router.GET("/genres", c.getGenres)
	router.GET("/genres/:id", c.getGenre)
}

// @Summary List MPA ratings
// @Tags Catalog
// @Produce json
// @Success 200 {array} EntryDTO
// @Router /mpa [get]
func (c *Controller) getRatings(ctx *gin.Context) {
	ratings, err := c.uc.Ratings(ctx.Request.Context())
	if err != nil {
		http_common.RespondError(ctx, c.logger, "load ratings", err)
		return
	}

	out := make([]EntryDTO, len(ratings))
	for i, r := range ratings {
		out[i] = EntryDTO{ID: r.ID, Name: r.Name}
	}
	ctx.JSON(http.StatusOK, out)
}

// @Summary Get MPA rating
// @Tags Catalog
// @Produce json
// @Param id path int true "Rating id"
// @Success 200 {object} EntryDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Router /mpa/{id} [get]
func (c *Controller) getRating(ctx *gin.Context) {
	ID, err := http_common.ParamIntID(ctx, "id")
	if err != nil {
		http_common.RespondBadRequest(ctx, c.logger, "Invalid rating ID", err)
		return
	}

	r, err := c.uc.RatingByID(ctx.Request.Context(), ID)
	if err != nil {
		http_common.RespondError(ctx, c.logger, "load rating", err)
		return
	}
	ctx.JSON(http.StatusOK, EntryDTO{ID: r.ID, Name: r.Name})
}

// @Summary List genres
// @Tags Catalog
// @Produce json
// @Success 200 {array} EntryDTO
// @Router /genres [get]
func (c *Controller) getGenres(ctx *gin.Context) {
	genres, err := c.uc.Genres(ctx.Request.Context())
	if err != nil {
		http_common.RespondError(ctx, c.logger, "load genres", err)
		return
	}

	out := make([]EntryDTO, len(genres))
	for i, g := range genres {
		out[i] = EntryDTO{ID: g.ID, Name: g.Name}
	}
	ctx.JSON(http.StatusOK, out)
}

// @Summary Get genre
// @Tags Catalog
// @Produce json
// @Param id path int true "Genre id"
// @Success 200 {object} EntryDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Router /genres/{id} [get]
func (c *Controller) getGenre(ctx *gin.Context) {
	ID, err := http_common.ParamIntID(ctx, "id")
	if err != nil {
		http_common.RespondBadRequest(ctx, c.logger, "Invalid genre ID", err)
		return
	}

	g, err := c.uc.GenreByID(ctx.Request.Context(), ID)
	if err != nil {
		http_common.RespondError(ctx, c.logger, "load genre", err)
		return
	}
	ctx.JSON(http.StatusOK, EntryDTO{ID: g.ID, Name: g.Name})
}
