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

// EmptyNotesMessage is returned with 200 instead of an empty array.
const EmptyNotesMessage = "no Notes found !"

type NoteHandler struct {
	svc *service.NoteService
}

func NewNoteHandler(svc *service.NoteService) *NoteHandler {
	return &NoteHandler{svc: svc}
}

// List godoc
// @Summary      List notes
// @Description  Filters by exact title, else by owner. An empty result is reported as a message object.
// @Tags         notes
// @Produce      json
// @Param        title   query     string  false  "Exact title"
// @Param        userId  query     string  false  "Owner id"
// @Success      200     {array}   dto.NoteResponse
// @Router       /notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	var req dto.ListNotesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		message(c, http.StatusBadRequest, "Invalid query")
		return
	}
	if req.Title == "" && req.UserID == "" {
		if err := bindBody(c, &req); err != nil {
			message(c, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	list, err := h.svc.List(c.Request.Context(), dom.NoteFilter{Title: req.Title, UserID: req.UserID})
	if err != nil {
		_ = c.Error(err)
		return
	}
	if len(list) == 0 {
		message(c, http.StatusOK, EmptyNotesMessage)
		return
	}
	c.JSON(http.StatusOK, notesToResponses(list))
}

// Create godoc
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateNoteRequest  true  "Note body"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.MessageResponse
// @Router       /notes [post]
func (h *NoteHandler) Create(c *gin.Context) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "All fields required !")
		return
	}

	n, err := h.svc.Create(c.Request.Context(), req.User, req.Title, req.Text)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			message(c, http.StatusBadRequest, "All fields required !")
			return
		}
		_ = c.Error(err)
		return
	}
	message(c, http.StatusCreated, fmt.Sprintf("Note : %s created successfully !", n.Title))
}

// Update godoc
// @Summary      Update a note
// @Description  Rewrites title and text. The note is always marked completed.
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body      dto.UpdateNoteRequest  true  "Note fields"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.MessageResponse
// @Router       /notes [patch]
func (h *NoteHandler) Update(c *gin.Context) {
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		message(c, http.StatusBadRequest, "all Fields are Required !")
		return
	}

	n, err := h.svc.Update(c.Request.Context(), req.ID, req.Title, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			message(c, http.StatusBadRequest, "all Fields are Required !")
		case errors.Is(err, service.ErrNotFound):
			message(c, http.StatusBadRequest, "the note is not found !")
		default:
			_ = c.Error(err)
		}
		return
	}
	message(c, http.StatusOK, fmt.Sprintf("Note Updated %s Successfully!", n.Title))
}

// Delete godoc
// @Summary      Delete a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body      dto.DeleteRequest  true  "Note id"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.MessageResponse
// @Router       /notes [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	var req dto.DeleteRequest
	if err := bindBody(c, &req); err != nil {
		message(c, http.StatusBadRequest, "Id is Required !")
		return
	}

	_, err := h.svc.Delete(c.Request.Context(), req.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			message(c, http.StatusBadRequest, "Id is Required !")
		case errors.Is(err, service.ErrNotFound):
			message(c, http.StatusBadRequest, "No note found")
		default:
			_ = c.Error(err)
		}
		return
	}
	message(c, http.StatusOK, "Ressource deleted Successfully !")
}

func noteToResponse(n dom.Note) dto.NoteResponse {
	return dto.NoteResponse{
		ID:        n.ID,
		User:      n.UserID,
		Title:     n.Title,
		Text:      n.Text,
		Completed: n.Completed,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func notesToResponses(list []dom.Note) []dto.NoteResponse {
	out := make([]dto.NoteResponse, len(list))
	for i := range list {
		out[i] = noteToResponse(list[i])
	}
	return out
}
