package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pesanet/kopa_lending/internal/pkg/models"
	"pesanet/kopa_lending/internal/pkg/services"
)

type AuthHandler struct {
	service services.AuthServiceInterface
}

func NewAuthHandler(service services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) SendOtp(c *gin.Context) {
	var body models.SendOtpRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	session, err := h.service.SendOtp(c.Request.Context(), body.PhoneNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var body models.VerifyOtpRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	tempToken, err := h.service.VerifyOtp(c.Request.Context(), body.SessionID, body.PhoneNumber, body.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"temp_token": tempToken})
}

func (h *AuthHandler) SetPin(c *gin.Context) {
	var body models.SetPinRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	token, err := h.service.SetPin(c.Request.Context(), body.PhoneNumber, body.Pin)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body models.LoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	token, err := h.service.Login(c.Request.Context(), body.PhoneNumber, body.Pin)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	userID := c.Param("userId")
	token, err := h.service.RefreshSession(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.Param("userId")
	if err := h.service.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Logged out"})
}

func (h *AuthHandler) SessionStatus(c *gin.Context) {
	userID := c.Param("userId")
	c.JSON(http.StatusOK, gin.H{"logged_in": h.service.IsLoggedIn(c.Request.Context(), userID)})
}

func (h *AuthHandler) UpdatePin(c *gin.Context) {
	userID := c.Param("userId")
	var body models.UpdatePinRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.service.UpdatePin(c.Request.Context(), userID, body.CurrentPin, body.NewPin); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "PIN updated"})
}

func (h *AuthHandler) CreateClient(c *gin.Context) {
	var body models.CreateClientRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.service.CreateClient(c.Request.Context(), body.PhoneNumber, models.User{
		PhoneNumber: body.PhoneNumber,
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		NationalID:  body.NationalID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) StartMobileChange(c *gin.Context) {
	userID := c.Param("userId")
	var body models.MobileChangeStartRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	changeToken, err := h.service.StartMobileChange(c.Request.Context(), userID, body.NewPhoneNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"change_token": changeToken})
}

func (h *AuthHandler) VerifyMobileChange(c *gin.Context) {
	userID := c.Param("userId")
	var body models.MobileChangeVerifyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.service.VerifyMobileChange(c.Request.Context(), userID, body.ChangeToken, body.Code); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Number verified"})
}

func (h *AuthHandler) ConfirmMobileChange(c *gin.Context) {
	userID := c.Param("userId")
	var body models.MobileChangeConfirmRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.service.ConfirmMobileChange(c.Request.Context(), userID, body.ChangeToken, body.Pin)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
