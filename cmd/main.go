package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/amirphl/trendline/internal/candle"
	"github.com/amirphl/trendline/internal/config"
	"github.com/amirphl/trendline/internal/db"
	"github.com/amirphl/trendline/internal/db/conf"
	"github.com/amirphl/trendline/internal/exchange"
	"github.com/amirphl/trendline/internal/indicator"
	"github.com/amirphl/trendline/internal/plot"
	"github.com/amirphl/trendline/internal/series"
	"github.com/amirphl/trendline/internal/utils"
)

func main() {
	cfg := config.MustLoadConfig()
	log := utils.GetLogger()
	if err := utils.Configure(cfg.LogLevel, cfg.LogJSON); err != nil {
		log.WithError(err).Fatal("invalid log level")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.WithField("signal", sig).Info("shutting down")
		cancel()
	}()

	var out io.Writer = os.Stdout
	if cfg.OutputPath != "" {
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			log.WithError(err).Fatal("failed to create output file")
		}
		defer f.Close()
		out = f
	}

	if err := run(ctx, cfg, os.Stdin, out); err != nil {
		log.WithError(err).Error("computation failed")
		cancel()
		os.Exit(1)
	}
}

// run loads the input series, computes the requested indicator and writes it.
func run(ctx context.Context, cfg config.Config, stdin io.Reader, out io.Writer) error {
	log := utils.GetLogger().WithFields(logrus.Fields{
		"source":    cfg.Source,
		"algorithm": cfg.Algorithm,
		"kind":      cfg.Kind,
	})

	in, err := loadSeries(ctx, cfg, stdin)
	if err != nil {
		return errors.Wrap(err, "load series")
	}
	log.WithField("points", in.Len()).Info("series loaded")

	kind, err := indicator.ParseKind(cfg.Kind)
	if err != nil {
		return err
	}
	d := indicator.NewDispatcher(cfg.IndicatorOptions())
	ind, err := d.Resolve(kind, cfg.Algorithm, cfg.Periods)
	if err != nil {
		return err
	}
	result, err := ind.Calculate(in)
	if err != nil {
		return errors.Wrapf(err, "calculate %s", ind.Name())
	}
	log.WithField("defined", result.Defined()).Info("indicator computed")

	name := cfg.PlotName
	if name == "" {
		name = ind.Name()
	}
	p := plot.New(name, result)
	if cfg.Format == config.FormatCSV {
		return plot.WriteCSV(out, p)
	}
	return plot.WriteJSON(out, p)
}

func loadSeries(ctx context.Context, cfg config.Config, stdin io.Reader) (series.Series, error) {
	switch cfg.Source {
	case config.SourceCSV:
		r := stdin
		if cfg.InputPath != "" {
			f, err := os.Open(cfg.InputPath)
			if err != nil {
				return series.Series{}, err
			}
			defer f.Close()
			r = f
		}
		return series.ReadCSV(r, cfg.CSVXColumn, cfg.CSVYColumn)

	case config.SourcePostgres:
		storage, err := openStorage(cfg)
		if err != nil {
			return series.Series{}, err
		}
		defer storage.GetDB().Close()
		return loadCandles(ctx, cfg, storage)

	case config.SourceWallex:
		fetchCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
		defer cancel()
		fetcher := exchange.NewWallexExchange(cfg.WallexAPIKey)
		candles, err := fetcher.FetchCandles(fetchCtx, cfg.Symbol, cfg.Timeframe, cfg.From, cfg.To)
		if err != nil {
			return series.Series{}, err
		}
		// Keep a copy of what was fetched when a database is configured.
		if cfg.DBConnStr != "" {
			if storage, err := openStorage(cfg); err != nil {
				utils.GetLogger().WithError(err).Warn("skipping candle persistence")
			} else {
				defer storage.GetDB().Close()
				if err := storage.SaveCandles(ctx, candles); err != nil {
					utils.GetLogger().WithError(err).Warn("failed to persist fetched candles")
				}
			}
		}
		return project(cfg, candles)

	default:
		return series.Series{}, errors.Errorf("unknown source %q", cfg.Source)
	}
}

func openStorage(cfg config.Config) (db.Storage, error) {
	dbConfig, err := conf.NewConfig(cfg.DBConnStr, cfg.DBMaxOpen, cfg.DBMaxIdle)
	if err != nil {
		return nil, err
	}
	return db.New(dbConfig)
}

func loadCandles(ctx context.Context, cfg config.Config, storage candle.Storage) (series.Series, error) {
	candles, err := storage.GetCandles(ctx, cfg.Symbol, cfg.Timeframe, cfg.CandleSrc, cfg.From, cfg.To)
	if err != nil {
		return series.Series{}, err
	}
	return project(cfg, candles)
}

// project turns candles into the series the indicator consumes.
func project(cfg config.Config, candles []candle.Candle) (series.Series, error) {
	var err error
	if cfg.Aggregate != "" && cfg.Aggregate != cfg.Timeframe {
		candles, err = candle.Aggregate(candles, cfg.Aggregate)
		if err != nil {
			return series.Series{}, err
		}
	}
	if cfg.HeikenAshi {
		candles = candle.GenerateHeikenAshiCandles(candles)
	}
	field, err := candle.ParseField(cfg.Field)
	if err != nil {
		return series.Series{}, err
	}
	return candle.ToSeries(candles, field)
}
