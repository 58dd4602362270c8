package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lunarpay/reclaim/internal/app/api/middleware"
	"github.com/lunarpay/reclaim/internal/app/service/account"
	"github.com/lunarpay/reclaim/internal/app/service/recovery"
	"github.com/lunarpay/reclaim/internal/platform/stripeapi"
	"github.com/lunarpay/reclaim/pkg/response"
)

// @Summary      List failed transactions
// @Description  Fetches the caller's failed charges in a date window, grouped by customer and enriched with profile data.
// @Tags         Recovery
// @Produce      json
// @Param        start_date query string false "Start date (YYYY-MM-DD, inclusive)"
// @Param        end_date   query string false "End date (YYYY-MM-DD, inclusive)"
// @Success      200  {object}  handlers.RespFailedTransactions
// @Router       /api/recovery/failed-transactions [get]
func ApiFailedTransactions(mgr recovery.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req recovery.FailedTransactionsRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := mgr.FailedTransactions(c.Request.Context(), middleware.UserID(c), &req)
		if err != nil {
			c.JSON(http.StatusOK, recoveryError(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

// @Summary      Retry payment
// @Description  Retries a failed charge across the customer's stored payment methods, stopping at the first success. Returns the full attempt trail.
// @Tags         Recovery
// @Accept       json
// @Produce      json
// @Param        request body recovery.RetryPaymentRequest true "Retry request"
// @Success      200  {object}  handlers.RespRetryPayment
// @Router       /api/recovery/retry-payment [post]
func ApiRetryPayment(mgr recovery.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req recovery.RetryPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if req.PaymentIntentID == "" || req.CustomerID == "" {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "payment_intent_id and customer_id are required"))
			return
		}
		res, err := mgr.RetryPayment(c.Request.Context(), middleware.UserID(c), &req)
		if err != nil {
			c.JSON(http.StatusOK, recoveryError(err))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

func recoveryError(err error) *response.APIResponse[any] {
	switch {
	case errors.Is(err, account.ErrCredentialMissing):
		return response.ErrorT[any](response.APIResponseCodeBadRequest,
			"processor key not configured: add your secret key in profile settings")
	case errors.Is(err, stripeapi.ErrNotFound):
		return response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error())
	default:
		return response.ErrorT[any](response.APIResponseCodeError, err.Error())
	}
}

func RegisterRecoveryRoutes(r gin.IRouter, mgr recovery.Manager) {
	r.GET("/failed-transactions", ApiFailedTransactions(mgr))
	r.POST("/retry-payment", ApiRetryPayment(mgr))
}
