package rewardservice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportArchiveXLSX renders a snapshot as a spreadsheet: one row per archived
// player, ordered by rank.
func (s *Service) ExportArchiveXLSX(ctx context.Context, periodLabel string) ([]byte, error) {
	return withTelemetry(s, ctx, "ExportArchiveXLSX", func(ctx context.Context) ([]byte, error) {
		snapshot, err := s.GetArchive(ctx, periodLabel)
		if err != nil {
			return nil, err
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := f.GetSheetName(0)
		headers := []string{"Rank", "Player ID", "Display Name", "Score"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			if err := f.SetCellValue(sheet, cell, h); err != nil {
				return nil, fmt.Errorf("failed to write export header: %w", err)
			}
		}

		for row, p := range snapshot.TopPlayers {
			values := []any{p.Rank, p.PlayerID, p.DisplayName, p.Score}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return nil, fmt.Errorf("failed to write export row: %w", err)
				}
			}
		}

		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			return nil, fmt.Errorf("failed to serialize export: %w", err)
		}
		return buf.Bytes(), nil
	})
}
