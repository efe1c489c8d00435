package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	rangecache "github.com/krisalay/interval-cache"
	"github.com/krisalay/interval-cache/api"
	"github.com/krisalay/interval-cache/engine"
	"github.com/krisalay/interval-cache/index"
	"github.com/krisalay/interval-cache/metrics"
	"github.com/krisalay/interval-cache/scanlru"
	"github.com/krisalay/interval-cache/sequence"
	"github.com/krisalay/interval-cache/types"
	"github.com/krisalay/interval-cache/workload"
)

var log = logrus.WithField("prefix", "benchmark")

var (
	lengthFlag = &cli.IntFlag{
		Name:    "length",
		Usage:   "Length of the sequence",
		Value:   100_000,
		EnvVars: []string{"RANGECACHE_LENGTH"},
	}
	opsFlag = &cli.IntFlag{
		Name:    "ops",
		Usage:   "Number of operations in the workload",
		Value:   50_000,
		EnvVars: []string{"RANGECACHE_OPS"},
	}
	capacityFlag = &cli.IntFlag{
		Name:    "capacity",
		Usage:   "Maximum number of cached intervals",
		Value:   rangecache.DefaultCapacity,
		EnvVars: []string{"RANGECACHE_CAPACITY"},
	}
	cacheFlag = &cli.StringFlag{
		Name:    "cache",
		Usage:   "Cache implementation: interval or scanlru",
		Value:   "interval",
		EnvVars: []string{"RANGECACHE_CACHE"},
	}
	indexFlag = &cli.StringFlag{
		Name:    "index",
		Usage:   "Invalidation index of the interval cache: tree or scan",
		Value:   "tree",
		EnvVars: []string{"RANGECACHE_INDEX"},
	}
	hotPoolFlag = &cli.IntFlag{
		Name:  "hot-pool",
		Usage: "Number of hot intervals",
		Value: 30,
	}
	pHotFlag = &cli.Float64Flag{
		Name:  "p-hot",
		Usage: "Probability a range query targets a hot interval",
		Value: 0.95,
	}
	pUpdateFlag = &cli.Float64Flag{
		Name:  "p-update",
		Usage: "Probability an operation is an update",
		Value: 0.03,
	}
	seedFlag = &cli.Uint64Flag{
		Name:  "seed",
		Usage: "Seed for the sequence and the workload",
		Value: 1,
	}
	verbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity (trace, debug, info, warn, error)",
		Value: "info",
	}
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	app := cli.App{}
	app.Name = "benchmark"
	app.Usage = "Compares range-sum queries with and without the interval LRU cache"
	app.Flags = []cli.Flag{
		lengthFlag,
		opsFlag,
		capacityFlag,
		cacheFlag,
		indexFlag,
		hotPoolFlag,
		pHotFlag,
		pUpdateFlag,
		seedFlag,
		verbosityFlag,
	}
	app.Before = func(c *cli.Context) error {
		level, err := logrus.ParseLevel(c.String(verbosityFlag.Name))
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		return nil
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCache(c *cli.Context, length int, m types.Metrics) (api.IntervalCache, error) {
	capacity := c.Int(capacityFlag.Name)
	switch c.String(cacheFlag.Name) {
	case "interval":
		var typ index.Type
		switch c.String(indexFlag.Name) {
		case "tree":
			typ = index.Tree
		case "scan":
			typ = index.Scan
		default:
			return nil, errors.Errorf("unknown index %q", c.String(indexFlag.Name))
		}
		ic, err := rangecache.New(rangecache.Config{Capacity: capacity, Length: length, Index: typ, Metrics: m})
		if err != nil {
			return nil, err
		}
		return ic, nil
	case "scanlru":
		sc, err := scanlru.New(capacity, length, m)
		if err != nil {
			return nil, err
		}
		return sc, nil
	default:
		return nil, errors.Errorf("unknown cache %q", c.String(cacheFlag.Name))
	}
}

func run(c *cli.Context) error {
	cfg := workload.DefaultConfig(c.Int(lengthFlag.Name), c.Int(opsFlag.Name))
	cfg.HotPool = c.Int(hotPoolFlag.Name)
	cfg.PHot = c.Float64(pHotFlag.Name)
	cfg.PUpdate = c.Float64(pUpdateFlag.Name)
	cfg.Seed = c.Uint64(seedFlag.Name)

	ops, err := workload.Generate(cfg)
	if err != nil {
		return errors.Wrap(err, "could not generate workload")
	}
	values := workload.RandomSequence(cfg.Length, cfg.MaxValue, cfg.Seed)

	log.WithFields(logrus.Fields{
		"length":   humanize.Comma(int64(cfg.Length)),
		"ops":      humanize.Comma(int64(cfg.Ops)),
		"capacity": humanize.Comma(int64(c.Int(capacityFlag.Name))),
		"cache":    c.String(cacheFlag.Name),
		"index":    c.String(indexFlag.Name),
	}).Info("Running benchmark")

	// ---------------- Uncached baseline ----------------
	base, err := workload.Run(ops, workload.Uncached(sequence.New(values)))
	if err != nil {
		return errors.Wrap(err, "baseline pass failed")
	}

	// ---------------- Cached pass ----------------
	reg := prometheus.NewRegistry()
	counters := &metrics.Counters{}
	cache, err := newCache(c, cfg.Length, metrics.Tee(counters, metrics.NewPrometheus(reg)))
	if err != nil {
		return err
	}
	e, err := engine.New(sequence.New(values), cache, counters)
	if err != nil {
		return err
	}
	cached, err := workload.Run(ops, e)
	if err != nil {
		return errors.Wrap(err, "cached pass failed")
	}
	if cached.Checksum != base.Checksum {
		return errors.Errorf("checksum mismatch: cached %d, uncached %d", cached.Checksum, base.Checksum)
	}

	// ---------------- Report ----------------
	fmt.Println("\n================ RESULTS =================")
	fmt.Printf("Range queries : %s\n", humanize.Comma(int64(base.Ranges)))
	fmt.Printf("Updates       : %s\n", humanize.Comma(int64(base.Updates)))
	fmt.Printf("No cache      : %.2fs\n", base.Duration.Seconds())
	fmt.Printf("LRU cache     : %.2fs", cached.Duration.Seconds())
	if cached.Duration < base.Duration {
		fmt.Printf("  (speedup x%.1f)\n", base.Duration.Seconds()/cached.Duration.Seconds())
	} else {
		fmt.Println("  (cache gave no speedup)")
	}

	s := e.Stats()
	fmt.Printf("Hit ratio     : %.1f%%\n", 100*s.HitRatio())
	fmt.Printf("Cache size    : %s / %s\n", humanize.Comma(int64(s.Size)), humanize.Comma(int64(s.Capacity)))
	fmt.Println("=========================================")

	families, err := reg.Gather()
	if err != nil {
		return errors.Wrap(err, "could not gather metrics")
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			log.WithField("value", m.GetCounter().GetValue()).Debug(mf.GetName())
		}
	}
	return nil
}
