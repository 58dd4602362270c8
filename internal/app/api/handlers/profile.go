package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lunarpay/reclaim/internal/app/api/middleware"
	"github.com/lunarpay/reclaim/internal/app/service/account"
	"github.com/lunarpay/reclaim/pkg/response"
)

type profileResponse struct {
	ID                     string    `json:"id"`
	Email                  string    `json:"email"`
	Name                   string    `json:"name"`
	Role                   string    `json:"role"`
	ProcessorKeyConfigured bool      `json:"processor_key_configured"`
	CreatedAt              time.Time `json:"created_at"`
}

type setProcessorKeyRequest struct {
	ProcessorKey string `json:"processor_key"`
}

type credentialStatusResponse struct {
	Configured bool `json:"configured"`
}

// @Summary      Get profile
// @Tags         Profile
// @Produce      json
// @Success      200  {object}  handlers.RespProfile
// @Router       /api/profile [get]
func ApiGetProfile(accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := accounts.GetUser(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		// The processor secret itself never leaves the account service.
		c.JSON(http.StatusOK, response.OKT(&profileResponse{
			ID:                     user.ID,
			Email:                  user.Email,
			Name:                   user.Name,
			Role:                   string(user.Role),
			ProcessorKeyConfigured: user.ProcessorKeyConfigured,
			CreatedAt:              user.CreatedAt,
		}))
	}
}

// @Summary      Configure processor key
// @Description  Stores or replaces the caller's payment-processor secret key.
// @Tags         Profile
// @Accept       json
// @Produce      json
// @Param        request body handlers.setProcessorKeyRequest true "Processor key"
// @Success      200  {object}  handlers.RespCredentialStatus
// @Router       /api/profile/processor-key [put]
func ApiSetProcessorKey(accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setProcessorKeyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if err := accounts.SetProcessorKey(c.Request.Context(), middleware.UserID(c), req.ProcessorKey); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(&credentialStatusResponse{Configured: true}))
	}
}

// @Summary      Remove processor key
// @Tags         Profile
// @Produce      json
// @Success      200  {object}  handlers.RespCredentialStatus
// @Router       /api/profile/processor-key [delete]
func ApiClearProcessorKey(accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := accounts.ClearProcessorKey(c.Request.Context(), middleware.UserID(c)); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(&credentialStatusResponse{Configured: false}))
	}
}

// @Summary      Processor key status
// @Tags         Profile
// @Produce      json
// @Success      200  {object}  handlers.RespCredentialStatus
// @Router       /api/profile/processor-key/status [get]
func ApiCredentialStatus(accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		configured, err := accounts.CredentialStatus(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(&credentialStatusResponse{Configured: configured}))
	}
}

func RegisterProfileRoutes(r gin.IRouter, accounts *account.Service) {
	r.GET("", ApiGetProfile(accounts))
	r.PUT("/processor-key", ApiSetProcessorKey(accounts))
	r.DELETE("/processor-key", ApiClearProcessorKey(accounts))
	r.GET("/processor-key/status", ApiCredentialStatus(accounts))
}
