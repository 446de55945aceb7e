package http_film

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/filmorate/internal/delivery/http/common"
	"github.com/humanbelnik/filmorate/internal/model"
	usecase_film "github.com/humanbelnik/filmorate/internal/usecase/film"
)

type Controller struct {
	uc *usecase_film.Usecase

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_film.Usecase, opts ...ControllerOption) *Controller {
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
	films := router.Group("/films")
	films.GET("", c.getFilms)
	films.POST("", c.createFilm)
	films.PUT("", c.updateFilm)
	films.GET("/popular", c.getPopular)
	films.GET("/:id", c.getFilm)
	films.PUT("/:id/like/:userId", c.addLike)
	films.DELETE("/:id/like/:userId", c.removeLike)
}

// @Summary List films
// @Description Returns every film in creation order
// @Tags Films
// @Produce json
// @Success 200 {array} FilmResponseDTO
// @Failure 500 {object} http_common.ErrorResponse
// @Router /films [get]
func (c *Controller) getFilms(ctx *gin.Context) {
	films, err := c.uc.LoadAll(ctx.Request.Context())
	if err != nil {
		http_common.RespondError(ctx, c.logger, "load films", err)
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromFilmList(films))
}

// @Summary Create film
// @Description Stores a new film. Rating and genres are referenced by id.
// @Tags Films
// @Accept json
// @Produce json
// @Param request body FilmRequestDTO true "Film"
// @Success 201 {object} FilmResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse "Unknown rating or genre"
// @Failure 409 {object} http_common.ErrorResponse
// @Router /films [post]
func (c *Controller) createFilm(ctx *gin.Context) {
	f, ok := c.bindFilm(ctx)
	if !ok {
		return
	}

	stored, err := c.uc.Create(ctx.Request.Context(), f)
	if err != nil {
		http_common.RespondError(ctx, c.logger, "create film", err)
		return
	}

	c.logger.Info("film created", slog.Int64("film_id", stored.ID))
	ctx.JSON(http.StatusCreated, ConvertFromFilm(stored))
}

// @Summary Update film
// @Description Replaces every field of the film with the given id. Likes are kept.
// @Tags Films
// @Accept json
// @Produce json
// @Param request body FilmRequestDTO true "Film"
// @Success 200 {object} FilmResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Router /films [put]
func (c *Controller) updateFilm(ctx *gin.Context) {
	f, ok := c.bindFilm(ctx)
	if !ok {
		return
	}
	if f.ID <= 0 {
		http_common.RespondBadRequest(ctx, c.logger, "Invalid request body", errors.New("id is required"))
		return
	}

	updated, err := c.uc.Update(ctx.Request.Context(), f)
	if err != nil {
		http_common.RespondError(ctx, c.logger, "update film", err)
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromFilm(updated))
}

// @Summary Get film
// @Tags Films
// @Produce json
// @Param id path int true "Film id"
// @Success 200 {object} FilmResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Router /films/{id} [get]
func (c *Controller) getFilm(ctx *gin.Context) {
	ID, err := http_common.ParamID(ctx, "id")
	if err != nil {
		http_common.RespondBadRequest(ctx, c.logger, "Invalid film ID", err)
		return
	}

	f, err := c.uc.LoadByID(ctx.Request.Context(), ID)
	if err != nil {
		http_common.RespondError(ctx, c.logger, "load film", err)
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromFilm(f))
}

// @Summary Like film
// @Description Records that the user likes the film. Repeating the call changes nothing.
// @Tags Films
// @Produce json
// @Param id path int true "Film id"
// @Param userId path int true "User id"
// @Success 200 {object} FilmResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Router /films/{id}/like/{userId} [put]
func (c *Controller) addLike(ctx *gin.Context) {
	filmID, userID, ok := c.likeParams(ctx)
	if !ok {
		return
	}

	f, err := c.uc.AddLike(ctx.Request.Context(), filmID, userID)
	if err != nil {
		http_common.RespondError(ctx, c.logger, "add like", err)
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromFilm(f))
}

// @Summary Remove like
// @Description Removes the user's like. A missing like is not an error.
// @Tags Films
// @Produce json
// @Param id path int true "Film id"
// @Param userId path int true "User id"
// @Success 200 {object} FilmResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Router /films/{id}/like/{userId} [delete]
func (c *Controller) removeLike(ctx *gin.Context) {
	filmID, userID, ok := c.likeParams(ctx)
	if !ok {
		return
	}

	f, err := c.uc.RemoveLike(ctx.Request.Context(), filmID, userID)
	if err != nil {
		http_common.RespondError(ctx, c.logger, "remove like", err)
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromFilm(f))
}

// @Summary Popular films
// @Description Most liked films first, ties in creation order
// @Tags Films
// @Produce json
// @Param count query int false "Maximum number of films" default(10)
// @Success 200 {array} FilmResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Router /films/popular [get]
func (c *Controller) getPopular(ctx *gin.Context) {
	raw := ctx.DefaultQuery("count", strconv.Itoa(model.DefaultPopularCount))
	count, err := strconv.Atoi(raw)
	if err != nil {
		http_common.RespondBadRequest(ctx, c.logger, "Invalid count", err)
		return
	}

	films, err := c.uc.Popular(ctx.Request.Context(), count)
	if err != nil {
		http_common.RespondError(ctx, c.logger, "load popular films", err)
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromFilmList(films))
}

func (c *Controller) bindFilm(ctx *gin.Context) (model.Film, bool) {
	var req FilmRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		http_common.RespondBadRequest(ctx, c.logger, "Invalid request body", err)
		return model.Film{}, false
	}

	f, err := req.ConvertToFilm()
	if err != nil {
		http_common.RespondBadRequest(ctx, c.logger, "Invalid request body", err)
		return model.Film{}, false
	}
	return f, true
}

func (c *Controller) likeParams(ctx *gin.Context) (int64, int64, bool) {
	filmID, err := http_common.ParamID(ctx, "id")
	if err != nil {
		http_common.RespondBadRequest(ctx, c.logger, "Invalid film ID", err)
		return 0, 0, false
	}
	userID, err := http_common.ParamID(ctx, "userId")
	if err != nil {
		http_common.RespondBadRequest(ctx, c.logger, "Invalid user ID", err)
		return 0, 0, false
	}
	return filmID, userID, true
}
