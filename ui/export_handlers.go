package ui

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tradenet/adapters/xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleExportRankings streams the session's current rankings table as a
// spreadsheet.
func (s *Server) handleExportRankings(c *gin.Context) {
	payload, err := s.dashboards.Rankings(currentState(c))
	if err != nil {
		writeError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := xlsx.WriteRankings(&buf, payload); err != nil {
		writeError(c, err)
		return
	}

	filename := fmt.Sprintf("rankings_%s_%s.xlsx", payload.Measure, time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
