package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradenet/domain/network"
	"tradenet/domain/viewstate"
)

// updateSession applies one transition to the caller's session and returns
// the resulting state. A failed transition leaves the stored state exactly
// as it was.
func (s *Server) updateSession(c *gin.Context, fn func(*viewstate.State) error) {
	state := currentState(c)
	updated, ok, err := s.sessions.Update(state.ID, fn)
	if !ok {
		// Session swept between middleware and handler; extremely unlikely
		// but recoverable by the client re-requesting.
		badRequest(c, "session expired, reload the dashboard")
		return
	}
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleSession(c *gin.Context) {
	c.JSON(http.StatusOK, currentState(c))
}

func (s *Server) handleSetMode(c *gin.Context) {
	var req struct {
		Mode viewstate.Mode `json:"mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "mode is required")
		return
	}
	s.updateSession(c, func(st *viewstate.State) error {
		return st.SetMode(req.Mode)
	})
}

func (s *Server) handleSetBoundary(c *gin.Context) {
	var req struct {
		Boundary network.BoundaryMode `json:"boundary_mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "boundary_mode is required")
		return
	}
	s.updateSession(c, func(st *viewstate.State) error {
		return st.SetBoundary(req.Boundary)
	})
}

func (s *Server) handleSetMeasure(c *gin.Context) {
	var req struct {
		Measure network.Measure `json:"measure" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "measure is required")
		return
	}
	s.updateSession(c, func(st *viewstate.State) error {
		return st.SetMeasure(req.Measure)
	})
}

// handleSetCommodity validates against the catalog before touching the
// session, so an unknown code leaves the previous valid filter active.
func (s *Server) handleSetCommodity(c *gin.Context) {
	var req struct {
		Code string `json:"commodity_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "commodity_code is required")
		return
	}

	if _, _, err := s.filters.FilterByCommodity(req.Code); err != nil {
		writeError(c, err)
		return
	}
	s.updateSession(c, func(st *viewstate.State) error {
		st.SetCommodity(req.Code)
		return nil
	})
}

func (s *Server) handleSetTheme(c *gin.Context) {
	var req struct {
		Theme viewstate.Theme `json:"theme" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "theme is required")
		return
	}
	s.updateSession(c, func(st *viewstate.State) error {
		return st.SetTheme(req.Theme)
	})
}

func (s *Server) handleSetThreshold(c *gin.Context) {
	var req struct {
		Value *float64 `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Value == nil {
		badRequest(c, "value is required")
		return
	}
	s.updateSession(c, func(st *viewstate.State) error {
		return st.SetFiltrationThreshold(*req.Value)
	})
}

// handleSelect records a map or table click. Posting the currently selected
// region clears the selection; an empty region always clears it.
func (s *Server) handleSelect(c *gin.Context) {
	var req struct {
		State string `json:"state"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid selection payload")
		return
	}
	s.updateSession(c, func(st *viewstate.State) error {
		if req.State == "" {
			st.ClearSelection()
			return nil
		}
		st.ToggleSelect(req.State)
		return nil
	})
}

func (s *Server) handleEdgeOverlay(c *gin.Context) {
	var req struct {
		Show  bool `json:"show"`
		Count int  `json:"count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid edge overlay payload")
		return
	}
	s.updateSession(c, func(st *viewstate.State) error {
		return st.SetEdgeOverlay(req.Show, req.Count)
	})
}
