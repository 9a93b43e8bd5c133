package main

import (
	"bytes"
	"fleet-route-service/internal/services"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNames(t *testing.T) {
	assert.Nil(t, parseNames(""))
	assert.Equal(t,
		[]services.AlgorithmName{services.AlgoSavings, services.AlgoSweep},
		parseNames(" savings, ,sweep "),
	)
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	err := printTable(&buf, []services.Result{{
		Algorithm: services.AlgoSweep,
		Stats:     services.Stats{TotalDistanceKm: 12.3, AssignedOrders: 4, VehiclesUsed: 2, AvgUtilization: 61.5},
		Elapsed:   3 * time.Millisecond,
	}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "algorithm")
	assert.Equal(t, []string{"sweep", "12.3", "4", "0", "2", "0", "0", "0.0", "61.5", "3"}, strings.Fields(lines[1]))
}
