package distance

import (
	"context"
	"encoding/json"
	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/platform/metrics"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

type tableResponse struct {
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// fetchTable retrieves distances (meters) and durations (seconds) from every
// source to every destination with one OSRM Table API request.
// Rows follow sources, columns follow destinations.
func (o *OSRMMatrixProvider) fetchTable(
	ctx context.Context,
	sources []domain.Coordinates,
	destinations []domain.Coordinates,
) (distances, durations [][]float64, err error) {
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.MatrixFetches.WithLabelValues(outcome).Inc()
	}()

	if len(sources) == 0 || len(destinations) == 0 {
		return nil, nil, nil
	}

	coords := make([]string, 0, len(sources)+len(destinations))
	srcIdx := make([]string, 0, len(sources))
	dstIdx := make([]string, 0, len(destinations))
	for _, c := range sources {
		srcIdx = append(srcIdx, strconv.Itoa(len(coords)))
		coords = append(coords, lonLat(c))
	}
	for _, c := range destinations {
		dstIdx = append(dstIdx, strconv.Itoa(len(coords)))
		coords = append(coords, lonLat(c))
	}

	endpoint := fmt.Sprintf(
		"%s/table/v1/%s/%s?sources=%s&destinations=%s&annotations=distance,duration",
		o.baseURL, o.profile,
		strings.Join(coords, ";"), strings.Join(srcIdx, ";"), strings.Join(dstIdx, ";"),
	)

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, endpoint)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("table request failed: %w", err)
	}
	defer resp.Body.Close()

	var tr tableResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, nil, fmt.Errorf("decode table response: %w", err)
	}
	if tr.Code != "Ok" {
		return nil, nil, fmt.Errorf("table response code %q: %s", tr.Code, tr.Message)
	}

	if distances, err = denseRows(tr.Distances, len(sources), len(destinations)); err != nil {
		return nil, nil, fmt.Errorf("table distances: %w", err)
	}
	if durations, err = denseRows(tr.Durations, len(sources), len(destinations)); err != nil {
		return nil, nil, fmt.Errorf("table durations: %w", err)
	}

	return distances, durations, nil
}

// denseRows checks the table shape and rejects unroutable (null) cells.
func denseRows(rows [][]*float64, n, m int) ([][]float64, error) {
	if len(rows) != n {
		return nil, fmt.Errorf("expected %d rows, got %d", n, len(rows))
	}

	out := make([][]float64, n)
	for i, row := range rows {
		if len(row) != m {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", i, m, len(row))
		}
		out[i] = make([]float64, m)
		for j, v := range row {
			if v == nil {
				return nil, fmt.Errorf("no route for cell [%d][%d]", i, j)
			}
			out[i][j] = *v
		}
	}
	return out, nil
}

func lonLat(c domain.Coordinates) string {
	ll := c.CoordsToList()
	return strconv.FormatFloat(ll[0], 'f', 6, 64) + "," + strconv.FormatFloat(ll[1], 'f', 6, 64)
}
