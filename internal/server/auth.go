package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	token, expiresAt, err := s.authSvc.Login(req.Username, req.Password)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, token, expiresAt)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"expiresAt": expiresAt.Format(time.RFC3339),
	}})
}

func (s *Server) Logout(c *gin.Context) {
	if token, ok := s.sessions.ReadToken(c); ok {
		s.authSvc.Logout(token)
	}
	s.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"loggedOut": true}})
}
