package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lunarpay/reclaim/internal/app/api/middleware"
	"github.com/lunarpay/reclaim/internal/app/service/ledger"
	"github.com/lunarpay/reclaim/pkg/response"
	types "github.com/lunarpay/reclaim/pkg/types"
)

func statsWindow(c *gin.Context) (types.TimeWindow, bool) {
	w, err := types.NewTimeWindow(c.Query("start_date"), c.Query("end_date"), 0)
	if err != nil {
		c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
		return types.TimeWindow{}, false
	}
	return w, true
}

// @Summary      Recovery summary
// @Description  Totals of recovered payments per currency plus the latest recovery.
// @Tags         Stats
// @Produce      json
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date   query string false "End date (YYYY-MM-DD)"
// @Success      200  {object}  handlers.RespStatsSummary
// @Router       /api/stats/summary [get]
func ApiStatsSummary(led *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		// No dates means all time for stats, unlike the recovery fetch.
		if c.Query("start_date") == "" && c.Query("end_date") == "" {
			res, err := led.GetSummary(c.Request.Context(), middleware.UserID(c), types.TimeWindow{})
			statsReply(c, res, err)
			return
		}
		w, ok := statsWindow(c)
		if !ok {
			return
		}
		res, err := led.GetSummary(c.Request.Context(), middleware.UserID(c), w)
		statsReply(c, res, err)
	}
}

// @Summary      Monthly recovery totals
// @Tags         Stats
// @Produce      json
// @Param        currency   query string false "Currency code (default USD)"
// @Param        start_date query string false "Start date (YYYY-MM-DD)"
// @Param        end_date   query string false "End date (YYYY-MM-DD)"
// @Success      200  {object}  handlers.RespStatsMonthly
// @Router       /api/stats/by-month [get]
func ApiStatsByMonth(led *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		currency := c.Query("currency")
		if currency == "" {
			currency = "USD"
		}
		var w types.TimeWindow
		if c.Query("start_date") != "" || c.Query("end_date") != "" {
			var ok bool
			if w, ok = statsWindow(c); !ok {
				return
			}
		}
		res, err := led.GetMonthly(c.Request.Context(), middleware.UserID(c), currency, w)
		statsReply(c, res, err)
	}
}

// @Summary      Recent recoveries
// @Tags         Stats
// @Produce      json
// @Param        limit query int false "Max rows (default 10)"
// @Success      200  {object}  handlers.RespStatsRecent
// @Router       /api/stats/recent [get]
func ApiStatsRecent(led *ledger.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 10
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, "invalid limit"))
				return
			}
			limit = n
		}
		res, err := led.GetRecent(c.Request.Context(), middleware.UserID(c), limit)
		statsReply(c, res, err)
	}
}

func statsReply[T any](c *gin.Context, res T, err error) {
	if err != nil {
		c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.OKT(res))
}

func RegisterStatsRoutes(r gin.IRouter, led *ledger.Service) {
	r.GET("/summary", ApiStatsSummary(led))
	r.GET("/by-month", ApiStatsByMonth(led))
	r.GET("/recent", ApiStatsRecent(led))
}
