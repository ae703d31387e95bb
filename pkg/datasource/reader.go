package datasource

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
	da "github.com/lintang-b-s/tollrate/pkg/datastructure"
	"github.com/lintang-b-s/tollrate/pkg/util"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrMalformedRow  = errors.New("malformed edge row")
)

const (
	colIDStart  = "id_start"
	colIDEnd    = "id_end"
	colDistance = "distance"
)

// ReadEdgesFile reads a delimited id_start,id_end,distance file. Files ending in .bz2 are
// decompressed on the fly.
func ReadEdgesFile(filename string) ([]da.Edge, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(filename, ".bz2") {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		r = bz
	}

	return ReadEdges(bufio.NewReader(r))
}

// ReadEdges parses comma separated records with a header row. Column order is taken from the
// header; extra columns are ignored.
func ReadEdges(r io.Reader) ([]da.Edge, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, util.WrapErrorf(ErrMissingColumn, util.ErrBadParamInput, "edge file is empty")
	}
	if err != nil {
		return nil, err
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	idx := make([]int, 0, 3)
	for _, name := range []string{colIDStart, colIDEnd, colDistance} {
		i, ok := cols[name]
		if !ok {
			return nil, util.WrapErrorf(ErrMissingColumn, util.ErrBadParamInput, "column %q not found in header %v", name, header)
		}
		idx = append(idx, i)
	}

	edges := make([]da.Edge, 0)
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "line %d: %v", line, err)
		}

		e, err := parseEdge(rec, idx)
		if err != nil {
			return nil, util.WrapErrorf(ErrMalformedRow, util.ErrBadParamInput, "line %d: %v", line, err)
		}
		edges = append(edges, e)
	}
	return edges, nil
}

func parseEdge(rec []string, idx []int) (da.Edge, error) {
	from, err := util.StringToInt64(rec[idx[0]])
	if err != nil {
		return da.Edge{}, fmt.Errorf("invalid %s %q", colIDStart, rec[idx[0]])
	}
	to, err := util.StringToInt64(rec[idx[1]])
	if err != nil {
		return da.Edge{}, fmt.Errorf("invalid %s %q", colIDEnd, rec[idx[1]])
	}
	dist, err := util.StringToFloat64(rec[idx[2]])
	if err != nil {
		return da.Edge{}, fmt.Errorf("invalid %s %q", colDistance, rec[idx[2]])
	}
	return da.NewEdge(da.ID(from), da.ID(to), dist), nil
}
