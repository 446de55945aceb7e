package http_user

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/filmorate/internal/delivery/http/common"
	"github.com/humanbelnik/filmorate/internal/model"
	usecase_user "github.com/humanbelnik/filmorate/internal/usecase/user"
)

type Controller struct {
	uc *usecase_user.Usecase

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_user.Usecase, opts ...ControllerOption) *Controller {
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
	users := router.Group("/users")
	users.GET("", c.getUsers)
	users.POST("", c.createUser)
	users.PUT("", c.updateUser)
	users.GET("/:id", c.getUser)
	users.GET("/:id/friends", c.getFriends)
	users.PUT("/:id/friends/:friendId", c.addFriend)
	users.DELETE("/:id/friends/:friendId", c.removeFriend)
	users.GET("/:id/friends/common/:otherId", c.getCommonFriends)
}

// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {array} UserResponseDTO
// @Failure 500 {object} http_common.ErrorResponse
// @Router /users [get]
func (c *Controller) getUsers(ctx *gin.Context) {
	users, err := c.uc.LoadAll(ctx.Request.Context())
	if err != nil {
		http_common.RespondError(ctx, c.logger, "load users", err)
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromUserList(users))
}

// @Summary Create user
// @Description Stores a new user. An empty name is replaced with the login.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body UserRequestDTO true "User"
// @Success 201 {object} UserResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 409 {object} http_common.ErrorResponse
// @Router /users [post]
func (c *Controller) createUser(ctx *gin.Context) {
	u, ok := c.bindUser(ctx)
	if !ok {
		return
	}

	stored, err := c.uc.Create(ctx.Request.Context(), u)
	if err != nil {
		http_common.RespondError(ctx, c.logger, "create user", err)
		return
	}

	c.logger.Info("user created", slog.Int64("user_id", stored.ID))
	ctx.JSON(http.StatusCreated, ConvertFromUser(stored))
}

// @Summary Update user
// @Tags Users
// @Accept json
// @Produce json
// @Param request body UserRequestDTO true "User"
// @Success 200 {object} UserResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Router /users [put]
func (c *Controller) updateUser(ctx *gin.Context) {
	u, ok := c.bindUser(ctx)
	if !ok {
		return
	}
	if u.ID <= 0 {
		http_common.RespondBadRequest(ctx, c.logger, "Invalid request body", errors.New("id is required"))
		return
	}

	updated, err := c.uc.Update(ctx.Request.Context(), u)
	if err != nil {
		http_common.RespondError(ctx, c.logger, "update user", err)
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromUser(updated))
}

// @Summary Get user
// @Tags Users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} UserResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Router /users/{id} [get]
func (c *Controller) getUser(ctx *gin.Context) {
	ID, err := http_common.ParamID(ctx, "id")
	if err != nil {
		http_common.RespondBadRequest(ctx, c.logger, "Invalid user ID", err)
		return
	}

	u, err := c.uc.LoadByID(ctx.Request.Context(), ID)
	if err != nil {
		http_common.RespondError(ctx, c.logger, "load user", err)
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromUser(u))
}

// @Summary Add friend
// @Description Makes both users friends of each other
// @Tags Users
// @Produce json
// @Param id path int true "User id"
// @Param friendId path int true "Friend id"
// @Success 200 {object} UserResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Router /users/{id}/friends/{friendId} [put]
func (c *Controller) addFriend(ctx *gin.Context) {
	userID, friendID, ok := c.pairParams(ctx, "friendId")
	if !ok {
		return
	}

	u, err := c.uc.AddFriend(ctx.Request.Context(), userID, friendID)
	if err != nil {
		http_common.RespondError(ctx, c.logger, "add friend", err)
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromUser(u))
}

// @Summary Remove friend
// @Description Ends the friendship for both users
// @Tags Users
// @Produce json
// @Param id path int true "User id"
// @Param friendId path int true "Friend id"
// @Success 200 {object} UserResponseDTO
// @Failure 400 {object} http_common.ErrorResponse
// @Failure 404 {object} http_common.ErrorResponse
// @Router /users/{id}/friends/{friendId} [delete]
func (c *Controller) removeFriend(ctx *gin.Context) {
	userID, friendID, ok := c.pairParams(ctx, "friendId")
	if !ok {
		return
	}

	u, err := c.uc.RemoveFriend(ctx.Request.Context(), userID, friendID)
	if err != nil {
		http_common.RespondError(ctx, c.logger, "remove friend", err)
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromUser(u))
}

// @Summary List friends
// @Tags Users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {array} UserResponseDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Router /users/{id}/friends [get]
func (c *Controller) getFriends(ctx *gin.Context) {
	ID, err := http_common.ParamID(ctx, "id")
	if err != nil {
		http_common.RespondBadRequest(ctx, c.logger, "Invalid user ID", err)
		return
	}

	friends, err := c.uc.Friends(ctx.Request.Context(), ID)
	if err != nil {
		http_common.RespondError(ctx, c.logger, "load friends", err)
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromUserList(friends))
}

// @Summary Common friends
// @Tags Users
// @Produce json
// @Param id path int true "User id"
// @Param otherId path int true "Other user id"
// @Success 200 {array} UserResponseDTO
// @Failure 404 {object} http_common.ErrorResponse
// @Router /users/{id}/friends/common/{otherId} [get]
func (c *Controller) getCommonFriends(ctx *gin.Context) {
	userID, otherID, ok := c.pairParams(ctx, "otherId")
	if !ok {
		return
	}

	common, err := c.uc.CommonFriends(ctx.Request.Context(), userID, otherID)
	if err != nil {
		http_common.RespondError(ctx, c.logger, "load common friends", err)
		return
	}

	ctx.JSON(http.StatusOK, ConvertFromUserList(common))
}

func (c *Controller) bindUser(ctx *gin.Context) (model.User, bool) {
	var req UserRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		http_common.RespondBadRequest(ctx, c.logger, "Invalid request body", err)
		return model.User{}, false
	}

	u, err := req.ConvertToUser()
	if err != nil {
		http_common.RespondBadRequest(ctx, c.logger, "Invalid request body", err)
		return model.User{}, false
	}
	return u, true
}

func (c *Controller) pairParams(ctx *gin.Context, other string) (int64, int64, bool) {
	userID, err := http_common.ParamID(ctx, "id")
	if err != nil {
		http_common.RespondBadRequest(ctx, c.logger, "Invalid user ID", err)
		return 0, 0, false
	}
	otherID, err := http_common.ParamID(ctx, other)
	if err != nil {
		http_common.RespondBadRequest(ctx, c.logger, "Invalid user ID", err)
		return 0, 0, false
	}
	return userID, otherID, true
}
