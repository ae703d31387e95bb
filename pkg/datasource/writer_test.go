package datasource

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/tollrate/pkg"
	da "github.com/lintang-b-s/tollrate/pkg/datastructure"
	"github.com/lintang-b-s/tollrate/pkg/engine"
	"github.com/lintang-b-s/tollrate/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func runScenario(t *testing.T) *engine.Result {
	t.Helper()
	store, err := da.NewEdgeStore([]da.Edge{da.NewEdge(1, 2, 10), da.NewEdge(2, 1, 12)})
	require.NoError(t, err)
	e, err := engine.NewEngineFromConfig(util.PipelineConfig{ThresholdBand: 0.1, MatrixWorkers: 1}, zap.NewNop())
	require.NoError(t, err)
	res, err := e.Run(context.Background(), store, nil)
	require.NoError(t, err)
	return res
}

func TestResultTables(t *testing.T) {
	tables := ResultTables(runScenario(t))
	require.Len(t, tables, 5)

	names := make([]string, len(tables))
	for i, tb := range tables {
		names[i] = tb.Name
	}
	assert.Equal(t, []string{"distance_matrix", "unrolled", "nearby", "tolls", "timed_tolls"}, names)

	assert.Equal(t, []string{"id", "1", "2"}, tables[0].Header)
	assert.Equal(t, [][]string{{"1", "0", "11"}, {"2", "11", "0"}}, tables[0].Rows)

	assert.Equal(t, [][]string{{"1", "2", "11"}, {"2", "1", "11"}}, tables[1].Rows)
	assert.Equal(t, [][]string{{"1", "2"}}, tables[2].Rows)

	assert.Equal(t, []string{"id_start", "id_end", "distance", "moto", "car", "rv", "bus", "truck"}, tables[3].Header)
	assert.Equal(t, []string{"1", "2", "11", "8.8", "13.2", "16.5", "24.2", "39.6"}, tables[3].Rows[0])

	timed := tables[4]
	assert.Equal(t, []string{"id_start", "id_end", "distance", "start_day", "start_time", "end_day", "end_time",
		"moto", "car", "rv", "bus", "truck"}, timed.Header)
	require.Len(t, timed.Rows, 34)
	assert.Equal(t, []string{"1", "2", "11", "Monday", "10:00:00", "Monday", "18:00:00",
		"10.56", "15.84", "19.8", "29.04", "47.52"}, timed.Rows[1])
}

func TestWriteResultFiles(t *testing.T) {
	res := runScenario(t)

	for _, compress := range []bool{false, true} {
		dir := t.TempDir()
		files, err := WriteResultFiles(dir, res, compress)
		require.NoError(t, err)
		require.Len(t, files, 5)

		unrolled := filepath.Join(dir, "unrolled.csv")
		if compress {
			unrolled += ".bz2"
		}
		assert.Contains(t, files, unrolled)

		f, err := os.Open(unrolled)
		require.NoError(t, err)
		var r io.Reader = f
		if compress {
			bz, err := bzip2.NewReader(f, nil)
			require.NoError(t, err)
			r = bz
		}
		records, err := csv.NewReader(r).ReadAll()
		require.NoError(t, err)
		f.Close()

		assert.Equal(t, [][]string{{"id_start", "id_end", "distance"}, {"1", "2", "11"}, {"2", "1", "11"}}, records)
	}
}

func TestUnrolledFileRoundTrip(t *testing.T) {
	res := runScenario(t)
	dir := t.TempDir()
	_, err := WriteResultFiles(dir, res, true)
	require.NoError(t, err)

	edges, err := ReadEdgesFile(filepath.Join(dir, "unrolled.csv.bz2"))
	require.NoError(t, err)
	assert.Equal(t, []da.Edge{da.NewEdge(1, 2, 11), da.NewEdge(2, 1, 11)}, edges)
}

func TestPrintTable(t *testing.T) {
	tb := Table{
		Name:   "unrolled",
		Header: []string{"id_start", "id_end", "distance"},
		Rows:   [][]string{{"1", "2", "11"}, {"2", "1", "11"}, {"1", "3", "4.5"}},
	}

	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, tb, 2))
	out := buf.String()
	assert.Contains(t, out, "# unrolled (3 rows)")
	assert.Contains(t, out, "... 1 more rows")
	assert.NotContains(t, out, "4.5")

	buf.Reset()
	require.NoError(t, PrintTable(&buf, tb, 0))
	assert.Contains(t, buf.String(), "4.5")
}

func TestReportTables(t *testing.T) {
	tables := ReportTables(runScenario(t), 7, pkg.CAR)
	require.Len(t, tables, 5)

	assert.Equal(t, [][]string{{"1", "11"}, {"2", "11"}}, tables[0].Rows)
	tables = tables[1:]

	assert.Equal(t, "car_toll_classes", tables[0].Name)
	assert.Equal(t, [][]string{{"low", "2"}, {"medium", "0"}, {"high", "0"}}, tables[0].Rows)
	assert.Empty(t, tables[1].Rows)
	assert.Equal(t, [][]string{{"1"}, {"2"}}, tables[2].Rows)

	grid := tables[3]
	assert.Equal(t, "adjusted_car_tolls", grid.Name)
	assert.Equal(t, []string{"id_start", "1", "2"}, grid.Header)
	// 13.2 * 1.25 = 16.5
	assert.Equal(t, [][]string{{"1", "0", "16.5"}, {"2", "16.5", "0"}}, grid.Rows)
}
