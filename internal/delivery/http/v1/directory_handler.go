package v1

import (
	"net/http"
	"strconv"

	"profile-directory/internal/delivery/http/response"
	"profile-directory/internal/domain"
	"profile-directory/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type DirectoryHandler struct {
	directoryUC domain.DirectoryUsecase
}

// NewDirectoryHandler registers directory routes
func NewDirectoryHandler(r *gin.RouterGroup, directoryUC domain.DirectoryUsecase) {
	handler := &DirectoryHandler{directoryUC: directoryUC}

	directory := r.Group("/directory")
	{
		directory.GET("", handler.GetDirectory)
		directory.PUT("/search", handler.SetSearch)
		directory.PATCH("/draft", handler.ChangeField)
		directory.DELETE("/draft", handler.CancelEdit)
	}

	profiles := r.Group("/profiles")
	{
		profiles.POST("/:id/toggle", handler.Toggle)
		profiles.POST("/:id/edit", handler.BeginEdit)
		profiles.POST("/:id/save", handler.SaveEdit)
		profiles.DELETE("/:id", handler.Delete)
	}
}

// SearchRequest sets the directory search term
type SearchRequest struct {
	Term string `json:"term"`
}

// FieldChangeRequest is a single form input event
type FieldChangeRequest struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value"`
}

// GetDirectory godoc
// @Summary Get the directory view
// @Description Returns the filtered profiles with open and edit state. A search query parameter filters this response only; the stored term is unchanged.
// @Tags Directory
// @Produce json
// @Param search query string false "Search term"
// @Success 200 {object} domain.DirectoryView
// @Router /directory [get]
func (h *DirectoryHandler) GetDirectory(c *gin.Context) {
	var (
		view *domain.DirectoryView
		err  error
	)
	if term, ok := c.GetQuery("search"); ok {
		view, err = h.directoryUC.Preview(c, term)
	} else {
		view, err = h.directoryUC.View(c)
	}
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Directory retrieved", view)
}

// SetSearch godoc
// @Summary Set the search term
// @Tags Directory
// @Accept json
// @Produce json
// @Param request body SearchRequest true "Search term"
// @Success 200 {object} domain.DirectoryView
// @Failure 400 {object} response.Response
// @Router /directory/search [put]
func (h *DirectoryHandler) SetSearch(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid search request"))
		return
	}

	view, err := h.directoryUC.SetSearch(c, req.Term)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Search updated", view)
}

// Toggle godoc
// @Summary Expand or collapse a profile
// @Description Expanding a profile collapses every other one. Ignored while an edit is in progress.
// @Tags Profiles
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} domain.DirectoryView
// @Failure 400 {object} response.Response
// @Router /profiles/{id}/toggle [post]
func (h *DirectoryHandler) Toggle(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	view, err := h.directoryUC.Toggle(c, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile toggled", view)
}

// BeginEdit godoc
// @Summary Start editing a profile
// @Description The profile must be expanded and belong to an adult.
// @Tags Profiles
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} domain.DirectoryView
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /profiles/{id}/edit [post]
func (h *DirectoryHandler) BeginEdit(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	view, err := h.directoryUC.BeginEdit(c, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Editing profile", view)
}

// ChangeField godoc
// @Summary Update a draft field
// @Description Field names are name, dob, gender, country and description.
// @Tags Directory
// @Accept json
// @Produce json
// @Param request body FieldChangeRequest true "Field change"
// @Success 200 {object} domain.DirectoryView
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /directory/draft [patch]
func (h *DirectoryHandler) ChangeField(c *gin.Context) {
	var req FieldChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Field name is required"))
		return
	}

	view, err := h.directoryUC.ChangeField(c, req.Name, req.Value)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Draft updated", view)
}

// CancelEdit godoc
// @Summary Discard the draft
// @Tags Directory
// @Produce json
// @Success 200 {object} domain.DirectoryView
// @Router /directory/draft [delete]
func (h *DirectoryHandler) CancelEdit(c *gin.Context) {
	view, err := h.directoryUC.CancelEdit(c)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Edit cancelled", view)
}

// SaveEdit godoc
// @Summary Save the draft
// @Description Country and description must be non-empty and country must not contain digits.
// @Tags Profiles
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} domain.DirectoryView
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /profiles/{id}/save [post]
func (h *DirectoryHandler) SaveEdit(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	view, err := h.directoryUC.SaveEdit(c, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile saved", view)
}

// Delete godoc
// @Summary Delete a profile
// @Tags Profiles
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} domain.DirectoryView
// @Failure 400 {object} response.Response
// @Router /profiles/{id} [delete]
func (h *DirectoryHandler) Delete(c *gin.Context) {
	id, ok := profileID(c)
	if !ok {
		return
	}

	view, err := h.directoryUC.Delete(c, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile deleted", view)
}

func profileID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Error(apperror.BadRequest("Invalid profile ID"))
		return 0, false
	}
	return id, true
}
