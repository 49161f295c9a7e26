package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/kahraba/internal/report/export"
)

func (s *Server) GetReport(c *gin.Context) {
	resp, err := s.reportSvc.Generate(c.Request.Context(), strings.TrimSpace(c.Param("period")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.ReportsGenerated.Inc()
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ExportReport(c *gin.Context) {
	report, err := s.reportSvc.Generate(c.Request.Context(), strings.TrimSpace(c.Param("period")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, report); err != nil {
		AbortWithError(c, err)
		return
	}

	s.metrics.ReportsGenerated.Inc()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report-%s.csv", report.Period))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (s *Server) ListPeriods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.reportSvc.Periods(c.Request.Context())})
}

func (s *Server) ListYears(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.reportSvc.Years(c.Request.Context())})
}
