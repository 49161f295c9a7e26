package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	customerdomain "github.com/smallbiznis/kahraba/internal/customer/domain"
)

type createCustomerRequest struct {
	Name            string   `json:"name"`
	Address         string   `json:"address"`
	Phone           string   `json:"phone"`
	SubscriptionFee *float64 `json:"subscriptionFee"`
	PriceUsdPerKwh  *float64 `json:"priceUsdPerKwh"`
	PriceLbpPerKwh  *float64 `json:"priceLbpPerKwh"`
	Status          string   `json:"status"`
}

func (s *Server) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.customerSvc.Create(c.Request.Context(), customerdomain.CreateCustomerRequest{
		Name:            req.Name,
		Address:         req.Address,
		Phone:           req.Phone,
		SubscriptionFee: req.SubscriptionFee,
		PriceUsdPerKwh:  req.PriceUsdPerKwh,
		PriceLbpPerKwh:  req.PriceLbpPerKwh,
		Status:          customerdomain.Status(req.Status),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListCustomers(c *gin.Context) {
	var query struct {
		Q      string `form:"q"`
		Status string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx := c.Request.Context()
	if query.Q == "" && query.Status == "" {
		c.JSON(http.StatusOK, gin.H{"data": s.customerSvc.List(ctx)})
		return
	}

	resp := s.customerSvc.Search(ctx, customerdomain.SearchCustomerRequest{
		Text:   query.Q,
		Status: customerdomain.Status(query.Status),
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCustomerByID(c *gin.Context) {
	resp, err := s.customerSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateCustomerRequest struct {
	Name            *string  `json:"name"`
	Address         *string  `json:"address"`
	Phone           *string  `json:"phone"`
	SubscriptionFee *float64 `json:"subscriptionFee"`
	PriceUsdPerKwh  *float64 `json:"priceUsdPerKwh"`
	PriceLbpPerKwh  *float64 `json:"priceLbpPerKwh"`
	Status          *string  `json:"status"`
}

func (s *Server) UpdateCustomer(c *gin.Context) {
	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	patch := customerdomain.UpdateCustomerRequest{
		Name:            req.Name,
		Address:         req.Address,
		Phone:           req.Phone,
		SubscriptionFee: req.SubscriptionFee,
		PriceUsdPerKwh:  req.PriceUsdPerKwh,
		PriceLbpPerKwh:  req.PriceLbpPerKwh,
	}
	if req.Status != nil {
		status := customerdomain.Status(*req.Status)
		patch.Status = &status
	}

	resp, err := s.customerSvc.Update(c.Request.Context(), strings.TrimSpace(c.Param("id")), patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteCustomer(c *gin.Context) {
	if err := s.customerSvc.Delete(c.Request.Context(), strings.TrimSpace(c.Param("id"))); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
