package costs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoWay(from, to string, meters, seconds int64) []Road {
	return []Road{
		{From: from, To: to, Meters: meters, Seconds: seconds},
		{From: to, To: from, Meters: meters, Seconds: seconds},
	}
}

func TestRoadNetworkMatrixUsesShortestAndFastestPaths(t *testing.T) {
	var roads []Road
	roads = append(roads, twoWay("depot", "junction", 10, 2)...)
	roads = append(roads, twoWay("junction", "B", 10, 2)...)
	// Long but fast highway.
	roads = append(roads, twoWay("depot", "B", 30, 3)...)

	m, err := NewRoadNetworkMatrix(roads, []string{"depot", "B"})
	require.NoError(t, err)

	d, tt, ok := m.Lookup("depot", "B")
	require.True(t, ok)
	assert.Equal(t, 20.0, d, "distance follows the shortest path")
	assert.Equal(t, 3.0, tt, "duration follows the fastest path")
}

func TestRoadNetworkMatrixErrors(t *testing.T) {
	_, err := NewRoadNetworkMatrix(nil, []string{"A"})
	assert.Error(t, err)

	oneWay := []Road{{From: "A", To: "B", Meters: 1, Seconds: 1}}
	_, err = NewRoadNetworkMatrix(oneWay, []string{"A", "B"})
	assert.ErrorContains(t, err, "unreachable")

	_, err = NewRoadNetworkMatrix(oneWay, []string{"A", "Z"})
	assert.ErrorContains(t, err, "not on the network")

	_, err = NewRoadNetworkMatrix([]Road{{From: "A", To: "B", Meters: -1, Seconds: 1}}, []string{"A"})
	assert.ErrorContains(t, err, "negative")
}

func TestLoadRoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roads.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"from":"A","to":"B","meters":5,"seconds":7}]`), 0o600))

	roads, err := LoadRoads(path)
	require.NoError(t, err)
	assert.Equal(t, []Road{{From: "A", To: "B", Meters: 5, Seconds: 7}}, roads)

	_, err = LoadRoads(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
