package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleMap(c *gin.Context) {
	payload, err := s.dashboards.MapPayload(currentState(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) handleRankings(c *gin.Context) {
	payload, err := s.dashboards.Rankings(currentState(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) handleStateDetail(c *gin.Context) {
	payload, err := s.dashboards.StateDetail(currentState(c), c.Param("abbr"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) handleStats(c *gin.Context) {
	payload, err := s.dashboards.NetworkStats(currentState(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) handleCommodities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"individual": s.catalog.Individual(),
		"groups":     s.catalog.Groups(),
	})
}
