package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"pesanet/kopa_lending/internal/pkg/models"
	"pesanet/kopa_lending/internal/pkg/remote/dto"
	"pesanet/kopa_lending/internal/pkg/services"
)

type ProfileHandler struct {
	service services.ProfileServiceInterface
}

func NewProfileHandler(service services.ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) Profile(c *gin.Context) {
	forceRefresh := c.Query("refresh") == "true"
	user, err := h.service.Profile(c.Request.Context(), c.Param("userId"), forceRefresh)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var body models.UpdateProfileBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	user := models.User{
		UserID:    c.Param("userId"),
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Address:   body.Address,
		Email:     body.Email,
	}
	if body.DateOfBirth != "" {
		dob := dto.ParseAPIDate(body.DateOfBirth)
		user.DateOfBirth = &dob
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// UploadDocument accepts a multipart file under the "document" field.
func (h *ProfileHandler) UploadDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("document")
	if err != nil {
		respondBindError(c, err)
		return
	}
	documentType := c.PostForm("document_type")
	if documentType == "" {
		documentType = "GENERAL"
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		respondError(c, err)
		return
	}

	objectURL, err := h.service.UploadDocument(c.Request.Context(), c.Param("userId"), documentType, fileHeader.Filename, content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"object_url": objectURL})
}

func (h *ProfileHandler) ProfileCompletion(c *gin.Context) {
	completion, err := h.service.ProfileCompletion(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, completion)
}

func (h *ProfileHandler) Preferences(c *gin.Context) {
	prefs, err := h.service.Preferences(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *ProfileHandler) SavePreferences(c *gin.Context) {
	var body models.UserPreferences
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.service.SavePreferences(c.Request.Context(), c.Param("userId"), body); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Preferences saved"})
}
