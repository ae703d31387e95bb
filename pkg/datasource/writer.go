package datasource

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/tollrate/pkg"
	"github.com/lintang-b-s/tollrate/pkg/analytics"
	da "github.com/lintang-b-s/tollrate/pkg/datastructure"
	"github.com/lintang-b-s/tollrate/pkg/engine"
	"github.com/lintang-b-s/tollrate/pkg/matrix"
	"github.com/lintang-b-s/tollrate/pkg/toll"
	"github.com/lintang-b-s/tollrate/pkg/util"
)

// Table is a header plus string rows, the common shape of every output artifact.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

func formatAmount(v float64) string {
	return util.FormatFloat(v, pkg.PRESENTATION_PRECISION)
}

func formatID(id da.ID) string {
	return strconv.FormatInt(int64(id), 10)
}

func vehicleHeader() []string {
	out := make([]string, 0, len(pkg.VehicleTypes))
	for _, v := range pkg.VehicleTypes {
		out = append(out, v.String())
	}
	return out
}

func MatrixTable(m *da.DistanceMatrix) Table {
	ids := m.IDs()
	header := make([]string, 0, len(ids)+1)
	header = append(header, "id")
	for _, id := range ids {
		header = append(header, formatID(id))
	}
	rows := make([][]string, len(ids))
	for i, id := range ids {
		row := make([]string, 0, len(ids)+1)
		row = append(row, formatID(id))
		for j := range ids {
			row = append(row, formatAmount(m.At(i, j)))
		}
		rows[i] = row
	}
	return Table{Name: "distance_matrix", Header: header, Rows: rows}
}

func UnrolledTable(edges []da.UnrolledEdge) Table {
	rows := make([][]string, len(edges))
	for i, e := range edges {
		rows[i] = []string{formatID(e.IDStart), formatID(e.IDEnd), formatAmount(e.Distance)}
	}
	return Table{Name: "unrolled", Header: []string{"id_start", "id_end", "distance"}, Rows: rows}
}

func NearbyTable(reference da.ID, ids []da.ID) Table {
	rows := make([][]string, len(ids))
	for i, id := range ids {
		rows[i] = []string{formatID(reference), formatID(id)}
	}
	return Table{Name: "nearby", Header: []string{"reference_id", "id"}, Rows: rows}
}

func TollTable(rows []toll.TollRow) Table {
	header := append([]string{"id_start", "id_end", "distance"}, vehicleHeader()...)
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string{formatID(r.IDStart), formatID(r.IDEnd), formatAmount(r.Distance)}, formatTolls(r)...)
	}
	return Table{Name: "tolls", Header: header, Rows: out}
}

func TimedTollTable(rows []toll.TimedTollRow) Table {
	header := append([]string{"id_start", "id_end", "distance", "start_day", "start_time", "end_day", "end_time"},
		vehicleHeader()...)
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string{
			formatID(r.IDStart), formatID(r.IDEnd), formatAmount(r.Distance),
			r.StartDay.String(), r.StartTime.String(), r.EndDay.String(), r.EndTime.String(),
		}, formatTolls(r.TollRow)...)
	}
	return Table{Name: "timed_tolls", Header: header, Rows: out}
}

// GridTable renders a toll pivot, one row per id_start.
func GridTable(name string, g *analytics.TollGrid) Table {
	header := make([]string, 0, len(g.Ends)+1)
	header = append(header, "id_start")
	for _, id := range g.Ends {
		header = append(header, formatID(id))
	}
	rows := make([][]string, len(g.Starts))
	for i, id := range g.Starts {
		row := make([]string, 0, len(g.Ends)+1)
		row = append(row, formatID(id))
		for _, v := range g.Values[i] {
			row = append(row, formatAmount(v))
		}
		rows[i] = row
	}
	return Table{Name: name, Header: header, Rows: rows}
}

// ReportTables summarizes a run: mean distance per id_start, car toll classes, bus outliers,
// id_starts with a heavy mean truck toll and the adjusted toll grid of gridVehicle.
func ReportTables(res *engine.Result, truckLimit float64, gridVehicle pkg.VehicleType) []Table {
	means := matrix.MeanDistances(res.Unrolled)
	meanTable := Table{Name: "mean_distances", Header: []string{"id_start", "mean_distance"}}
	for _, id := range matrix.StartIDs(res.Unrolled) {
		meanTable.Rows = append(meanTable.Rows, []string{formatID(id), formatAmount(means[id])})
	}

	classes := analytics.ClassifyCarTolls(res.Tolls)
	classTable := Table{Name: "car_toll_classes", Header: []string{"class", "count"}}
	for _, c := range []string{"low", "medium", "high"} {
		classTable.Rows = append(classTable.Rows, []string{c, strconv.Itoa(classes[c])})
	}

	outliers := Table{Name: "bus_outliers", Header: []string{"id_start", "id_end", "bus"}}
	for _, i := range analytics.BusOutliers(res.Tolls) {
		r := res.Tolls[i]
		outliers.Rows = append(outliers.Rows, []string{formatID(r.IDStart), formatID(r.IDEnd), formatAmount(r.Bus)})
	}

	heavy := Table{Name: "heavy_truck_starts", Header: []string{"id_start"}}
	for _, id := range analytics.HeavyTruckStarts(res.Tolls, truckLimit) {
		heavy.Rows = append(heavy.Rows, []string{formatID(id)})
	}

	return []Table{
		meanTable,
		classTable,
		outliers,
		heavy,
		GridTable("adjusted_"+gridVehicle.String()+"_tolls", analytics.NewTollGrid(res.Tolls, gridVehicle).Adjust()),
	}
}

func formatTolls(r toll.TollRow) []string {
	tolls := r.Tolls()
	out := make([]string, len(tolls))
	for i, t := range tolls {
		out[i] = formatAmount(t)
	}
	return out
}

// ResultTables returns the output tables of a run in pipeline order.
func ResultTables(res *engine.Result) []Table {
	return []Table{
		MatrixTable(res.Matrix),
		UnrolledTable(res.Unrolled),
		NearbyTable(res.Reference, res.Nearby),
		TollTable(res.Tolls),
		TimedTollTable(res.TimedTolls),
	}
}

func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// WriteResultFiles writes one <name>.csv (or <name>.csv.bz2) per table into dir.
func WriteResultFiles(dir string, res *engine.Result, compress bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	written := make([]string, 0, 5)
	for _, t := range ResultTables(res) {
		filename := filepath.Join(dir, t.Name+".csv")
		if compress {
			filename += ".bz2"
		}
		if err := writeTableFile(filename, t, compress); err != nil {
			return written, fmt.Errorf("write %s: %w", filename, err)
		}
		written = append(written, filename)
	}
	return written, nil
}

func writeTableFile(filename string, t Table, compress bool) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if !compress {
		w := bufio.NewWriter(f)
		if err := WriteCSV(w, t); err != nil {
			return err
		}
		return w.Flush()
	}

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	w := bufio.NewWriter(bz)
	if err := WriteCSV(w, t); err != nil {
		bz.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		bz.Close()
		return err
	}
	return bz.Close()
}

// PrintTable renders t as aligned columns, at most limit rows (limit <= 0 prints everything).
func PrintTable(w io.Writer, t Table, limit int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "# %s (%d rows)\n", t.Name, len(t.Rows))
	writeLine(tw, t.Header)
	for i, row := range t.Rows {
		if limit > 0 && i >= limit {
			fmt.Fprintf(tw, "... %d more rows\n", len(t.Rows)-limit)
			break
		}
		writeLine(tw, row)
	}
	fmt.Fprintln(tw)
	return tw.Flush()
}

func writeLine(w io.Writer, cells []string) {
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, c)
	}
	fmt.Fprintln(w)
}
