package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"

	"tradenet/domain/network"
)

// Methodology notes shown in the analyze-mode interpretation panel, one per
// measure, authored in markdown and rendered once per request.
var guideNotes = map[network.Measure]struct {
	Title   string
	Body    string
	Insight string
}{
	network.MeasureEigenvector: {
		Title: "Eigenvector Centrality",
		Body: "Measures influence through connections to other economically " +
			"important states. High scores indicate **structural power** through " +
			"relationships with economic powerhouses.",
		Insight: "Robust across network changes (ρ > 0.98). Iowa: #31 GDP → #13 Eigenvector.",
	},
	network.MeasureOutDegree: {
		Title: "Weighted Out-Degree",
		Body: "Quantifies direct distribution capacity as total outbound trade " +
			"value. Closely tracks GDP but reveals **trade-specific** production capacity.",
		Insight: "High GDP alignment expected. Exceptions like FL (#4 GDP, #14 OutDeg) reveal consumption vs production hubs.",
	},
	network.MeasureBetweenness: {
		Title: "Betweenness Centrality",
		Body: "Identifies states occupying **bridging positions** between regional " +
			"clusters. Uses weight inversion (high trade = short distance) so shortest " +
			"paths follow strong trade corridors.",
		Insight: "Rankings stable under filtration. CA and TX dominate as national trade bridges.",
	},
}

func (s *Server) handleGuide(c *gin.Context) {
	state := currentState(c)

	note, ok := guideNotes[state.Measure]
	if !ok {
		note = guideNotes[network.MeasureEigenvector]
	}

	c.JSON(http.StatusOK, gin.H{
		"measure": state.Measure,
		"title":   note.Title,
		"html":    string(markdown.ToHTML([]byte(note.Body), nil, nil)),
		"insight": note.Insight,
	})
}
