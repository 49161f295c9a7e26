package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	settingsdomain "github.com/smallbiznis/kahraba/internal/settings/domain"
)

func (s *Server) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": s.settingsSvc.Get(c.Request.Context())})
}

func (s *Server) SaveSettings(c *gin.Context) {
	var req settingsdomain.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.settingsSvc.Save(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
