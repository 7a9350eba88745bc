package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetCustomerSpending(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	resp, err := s.analyticsSvc.CustomerSpending(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// A customer with no orders is a valid empty result, not an error.
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTopSellingProducts(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		AbortWithError(c, newValidationError("invalid_limit", "limit is required"))
		return
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		AbortWithError(c, newValidationError("invalid_limit", "limit must be an integer"))
		return
	}

	resp, err := s.analyticsSvc.TopSellingProducts(c.Request.Context(), limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSalesAnalytics(c *gin.Context) {
	startDate := strings.TrimSpace(c.Query("start_date"))
	endDate := strings.TrimSpace(c.Query("end_date"))

	resp, err := s.analyticsSvc.SalesAnalytics(c.Request.Context(), startDate, endDate)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCustomerOrders(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	page, err := strconv.Atoi(strings.TrimSpace(c.DefaultQuery("page", "1")))
	if err != nil {
		AbortWithError(c, newValidationError("invalid_page", "page must be an integer"))
		return
	}
	limit, err := strconv.Atoi(strings.TrimSpace(c.DefaultQuery("limit", "10")))
	if err != nil {
		AbortWithError(c, newValidationError("invalid_limit", "limit must be an integer"))
		return
	}

	resp, err := s.analyticsSvc.CustomerOrders(c.Request.Context(), id, page, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
