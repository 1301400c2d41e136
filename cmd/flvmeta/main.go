package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/torresjeff/flvmeta/amf0"
	"github.com/torresjeff/flvmeta/config"
	"github.com/torresjeff/flvmeta/flv"
)

func main() {
	app := &cli.App{
		Name:      "flvmeta",
		Usage:     "extract AMF0 metadata from FLV files",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if c.NArg() == 0 {
		return errors.New("no input files")
	}

	logger, err := newLogger(cfg.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()

	extractor := flv.NewMetadataExtractor(sugar, cfg.MaxNesting)
	failed := 0
	for _, path := range c.Args().Slice() {
		// One id per file so log lines of the same extraction correlate.
		log := sugar.With("file", path, "id", uuid.New().String())
		meta, err := extract(extractor, path, cfg.MaxFileSize)
		if err != nil {
			log.Errorw("extraction failed", "error", err)
			failed++
			continue
		}
		fmt.Printf("%s: %s\n", path, meta)
	}
	if failed > 0 {
		return errors.Errorf("%d of %d files failed", failed, c.NArg())
	}
	return nil
}

func extract(extractor *flv.MetadataExtractor, path string, maxFileSize int64) (amf0.Value, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxFileSize {
		return nil, errors.Errorf("file is %d bytes, limit is %d", info.Size(), maxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return extractor.Extract(data)
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
