package rewardservice

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
)

// chartMaxBars caps how many archived players a chart renders; more than this
// makes the labels unreadable.
const chartMaxBars = 20

// ChartArchivePNG produces a PNG bar chart of an archived top list, highest
// scores first.
func (s *Service) ChartArchivePNG(ctx context.Context, periodLabel string) ([]byte, error) {
	return withTelemetry(s, ctx, "ChartArchivePNG", func(ctx context.Context) ([]byte, error) {
		snapshot, err := s.GetArchive(ctx, periodLabel)
		if err != nil {
			return nil, err
		}

		players := snapshot.TopPlayers
		if len(players) == 0 {
			return nil, fmt.Errorf("archive %q has no players to chart", periodLabel)
		}
		if len(players) > chartMaxBars {
			players = players[:chartMaxBars]
		}

		bars := make([]chart.Value, len(players))
		for i, p := range players {
			bars[i] = chart.Value{
				Value: float64(p.Score),
				Label: p.DisplayName,
			}
		}

		graph := chart.BarChart{
			Title:    fmt.Sprintf("Top players, period %s", snapshot.PeriodLabel),
			Width:    1024,
			Height:   512,
			BarWidth: 40,
			Bars:     bars,
		}

		buffer := bytes.NewBuffer([]byte{})
		if err := graph.Render(chart.PNG, buffer); err != nil {
			return nil, fmt.Errorf("failed to render archive chart: %w", err)
		}
		return buffer.Bytes(), nil
	})
}
