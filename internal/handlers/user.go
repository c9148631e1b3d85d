package handlers

import (
	"errors"
	"fmt"
	"net/http"

	dom "technotes/internal/domain"
	"technotes/internal/dto"
	"technotes/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List godoc
// @Summary      List users
// @Description  Password hashes are never returned.
// @Tags         users
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      400  {object}  dto.MessageResponse
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	if len(list) == 0 {
		message(c, http.StatusBadRequest, "No users found")
		return
	}
	c.JSON(http.StatusOK, usersToResponses(list))
}

// Create godoc
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateUserRequest  true  "User body"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.MessageResponse
// @Failure      409   {object}  dto.MessageResponse
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "All fields are required !")
		return
	}

	u, err := h.svc.Create(c.Request.Context(), req.Username, req.Password, req.Roles)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			message(c, http.StatusBadRequest, "All fields are required !")
		case errors.Is(err, service.ErrConflict):
			message(c, http.StatusConflict, "Duplicate username")
		default:
			_ = c.Error(err)
			message(c, http.StatusBadRequest, "Invalid user data received")
		}
		return
	}
	message(c, http.StatusCreated, fmt.Sprintf("New user %s created", u.Username))
}

// Update godoc
// @Summary      Update a user
// @Description  The password is re-hashed only when a non-empty value is supplied.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.UpdateUserRequest  true  "User fields"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.MessageResponse
// @Failure      409   {object}  dto.MessageResponse
// @Router       /users [patch]
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "All fields are required !")
		return
	}

	u, err := h.svc.Update(c.Request.Context(), service.UpdateUserInput{
		ID:       req.ID,
		Username: req.Username,
		Password: req.Password,
		Roles:    req.Roles,
		Active:   req.Active,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			message(c, http.StatusBadRequest, "All fields are required !")
		case errors.Is(err, service.ErrNotFound):
			message(c, http.StatusBadRequest, "user not found")
		case errors.Is(err, service.ErrConflict):
			message(c, http.StatusConflict, "Duplicate username")
		default:
			_ = c.Error(err)
		}
		return
	}
	message(c, http.StatusOK, fmt.Sprintf("%s updated", u.Username))
}

// Delete godoc
// @Summary      Delete a user
// @Description  Refused while the user owns notes. Replies with a plain JSON string.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.DeleteRequest  true  "User id"
// @Success      200   {string}  string
// @Failure      400   {object}  dto.MessageResponse
// @Router       /users [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	var req dto.DeleteRequest
	if err := bindBody(c, &req); err != nil {
		message(c, http.StatusBadRequest, "User ID Required")
		return
	}

	u, err := h.svc.Delete(c.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			message(c, http.StatusBadRequest, "User ID Required")
		case errors.Is(err, service.ErrHasNotes):
			message(c, http.StatusBadRequest, "User has assigned notes")
		case errors.Is(err, service.ErrNotFound):
			message(c, http.StatusBadRequest, "user not found")
		default:
			_ = c.Error(err)
		}
		return
	}
	c.JSON(http.StatusOK, fmt.Sprintf("Username %s with ID %s deleted ", u.Username, u.ID))
}

func userToResponse(u dom.User) dto.UserResponse {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Roles:     roles,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func usersToResponses(list []dom.User) []dto.UserResponse {
	out := make([]dto.UserResponse, len(list))
	for i := range list {
		out[i] = userToResponse(list[i])
	}
	return out
}
