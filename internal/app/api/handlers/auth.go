package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lunarpay/reclaim/internal/app/api/middleware"
	"github.com/lunarpay/reclaim/internal/app/service/account"
	"github.com/lunarpay/reclaim/pkg/response"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary      Sign up
// @Description  Registers a new dashboard account and returns a token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body account.SignupRequest true "Signup request"
// @Success      200  {object}  handlers.RespAuthResult
// @Router       /api/auth/signup [post]
func ApiSignup(accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req account.SignupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := accounts.Signup(c.Request.Context(), &req)
		if err != nil {
			if errors.Is(err, account.ErrEmailTaken) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "this email is already registered"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Log in
// @Description  Authenticates an account and returns a token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body handlers.loginRequest true "Login request"
// @Success      200  {object}  handlers.RespAuthResult
// @Router       /api/auth/login [post]
func ApiLogin(accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := accounts.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, account.ErrInvalidCredentials) {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "invalid email or password"))
				return
			}
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Current user
// @Description  Returns the authenticated account.
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  handlers.RespUserInfo
// @Router       /api/auth/me [get]
func ApiMe(accounts *account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := accounts.GetUser(c.Request.Context(), middleware.UserID(c))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(&account.UserInfo{
			ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role,
		}))
	}
}

func RegisterAuthRoutes(public gin.IRouter, authed gin.IRouter, accounts *account.Service) {
	public.POST("/signup", ApiSignup(accounts))
	public.POST("/login", ApiLogin(accounts))
	authed.GET("/me", ApiMe(accounts))
}
