package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	expensedomain "github.com/smallbiznis/kahraba/internal/expense/domain"
)

type appendExpenseRequest struct {
	Type   string  `json:"type"`
	Amount float64 `json:"amount"`
	Note   string  `json:"note"`
	Date   string  `json:"date"`
}

func (s *Server) AppendExpense(c *gin.Context) {
	var req appendExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.expenseSvc.Append(c.Request.Context(), expensedomain.AppendExpenseRequest{
		Type:   req.Type,
		Amount: req.Amount,
		Note:   req.Note,
		Date:   req.Date,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.ExpensesRecorded.Inc()
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListExpenses(c *gin.Context) {
	var query struct {
		Period string `form:"period"`
		Type   string `form:"type"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp := s.expenseSvc.List(c.Request.Context(), expensedomain.ListExpenseRequest{
		Period: strings.TrimSpace(query.Period),
		Type:   strings.TrimSpace(query.Type),
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
