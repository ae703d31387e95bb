package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/lintang-b-s/tollrate/pkg"
	"github.com/lintang-b-s/tollrate/pkg/analytics"
	"github.com/lintang-b-s/tollrate/pkg/datasource"
	da "github.com/lintang-b-s/tollrate/pkg/datastructure"
	"github.com/lintang-b-s/tollrate/pkg/engine"
	"github.com/lintang-b-s/tollrate/pkg/logger"
	"github.com/lintang-b-s/tollrate/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	inputFile = flag.String("input", "./data/dataset-3.csv", "id_start,id_end,distance csv file (.bz2 accepted)")
	outDir    = flag.String("out", "", "directory for the output csv tables, empty prints to stdout only")
	compress  = flag.Bool("compress", false, "write output tables as .csv.bz2")
	reference = flag.String("reference", "", "reference id for the threshold filter, empty uses the first unrolled id_start")
	band      = flag.Float64("band", -1, "threshold band, -1 uses THRESHOLD_BAND from config")
	workers   = flag.Int("workers", 0, "distance matrix workers, 0 uses MATRIX_WORKERS from config")
	printRows = flag.Int("print_rows", 20, "rows printed per table, 0 prints everything")
	report    = flag.Bool("report", false, "also print toll class counts, bus outliers, heavy truck starts and the adjusted toll grid")
	gridType  = flag.String("grid_vehicle", "car", "vehicle type of the adjusted toll grid in the report: moto, car, rv, bus or truck")
	truckMax  = flag.Float64("truck_limit", analytics.DEFAULT_TRUCK_TOLL_LIMIT, "mean truck toll above which an id_start is reported")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	_ = godotenv.Load()
	util.SetDefaults()
	if err := util.ReadConfig(); err != nil {
		logger.Fatal("read config", zap.Error(err))
	}
	if *band >= 0 {
		viper.Set("THRESHOLD_BAND", *band)
	}
	if *workers > 0 {
		viper.Set("MATRIX_WORKERS", *workers)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Fatal("toll rate computation failed", zap.Error(err))
	}
}

// parseReference returns nil for an empty flag. Negative ids are valid references.
func parseReference(s string) (*da.ID, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := util.StringToInt64(s)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "invalid -reference %q", s)
	}
	ref := da.ID(v)
	return &ref, nil
}

func run(ctx context.Context, logger *zap.Logger) error {
	logger.Info("Reading edges", zap.String("input", *inputFile))
	edges, err := datasource.ReadEdgesFile(*inputFile)
	if err != nil {
		return err
	}

	store, err := da.NewEdgeStore(edges)
	if err != nil {
		return err
	}

	tollEngine, err := engine.NewEngineFromConfig(util.LoadPipelineConfig(), logger)
	if err != nil {
		return err
	}

	ref, err := parseReference(*reference)
	if err != nil {
		return err
	}

	res, err := tollEngine.Run(ctx, store, ref)
	if err != nil {
		return err
	}

	tables := datasource.ResultTables(res)
	if *report {
		vehicle, ok := pkg.GetVehicleType(*gridType)
		if !ok {
			return fmt.Errorf("unknown vehicle type %q", *gridType)
		}
		tables = append(tables, datasource.ReportTables(res, *truckMax, vehicle)...)
	}
	for _, t := range tables {
		if err := datasource.PrintTable(os.Stdout, t, *printRows); err != nil {
			return err
		}
	}

	if *outDir == "" {
		return nil
	}
	written, err := datasource.WriteResultFiles(*outDir, res, *compress)
	if err != nil {
		return err
	}
	logger.Sugar().Infof("wrote %d tables to %s", len(written), *outDir)
	return nil
}
