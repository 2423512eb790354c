package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"tradenet/app"
	"tradenet/domain/network"
)

const sheetName = "Rankings"

// WriteRankings renders a rankings payload as a spreadsheet. Column layout
// mirrors the on-screen table: abbreviation, name, GDP rank, then the three
// centrality ranks, plus the rank-change column when present.
func WriteRankings(w io.Writer, p app.RankingsPayload) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	withDeltas := false
	for _, row := range p.Rows {
		if row.RankDelta != nil {
			withDeltas = true
			break
		}
	}

	headers := []interface{}{"Abbr", "State", "GDP", "Eigen", "OutDeg", "Betw"}
	if withDeltas {
		headers = append(headers, "Change")
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return err
	}

	for i, row := range p.Rows {
		cells := []interface{}{
			row.Abbr, row.StateName, gdpCell(row), row.RankEigenvector,
			row.RankOutDegree, row.RankBetweenness,
		}
		if withDeltas {
			cells = append(cells, deltaCell(row))
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func gdpCell(row app.RankingRow) interface{} {
	if row.GDPRank == 0 {
		return ""
	}
	return row.GDPRank
}

func deltaCell(row app.RankingRow) interface{} {
	if row.RankDelta == nil {
		return ""
	}
	return fmt.Sprintf("%s %+d", network.Arrow(*row.RankDelta), *row.RankDelta)
}
