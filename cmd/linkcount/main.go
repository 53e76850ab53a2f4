// linkcount counts the linkages of a batch of sentences and records the
// results in a SQLite database. The batch file is YAML:
//
//	name: smoke
//	islands_ok: false
//	max_null_count: 2
//	sentences:
//	  - name: cat-ran
//	    spec: "the:D+ cat:D-,S+ ran:S-"
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/momor666/link-grammar/config"
	"github.com/momor666/link-grammar/countdb"
	"github.com/momor666/link-grammar/internal/countserver"
)

type batchSentence struct {
	Name string `yaml:"name"`
	Spec string `yaml:"spec"`
}

type batchFile struct {
	Name         string          `yaml:"name"`
	IslandsOk    *bool           `yaml:"islands_ok"`
	MaxNullCount *int            `yaml:"max_null_count"`
	Sentences    []batchSentence `yaml:"sentences"`
}

func loadBatch(path string) (*batchFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b batchFile
	if err := yaml.Unmarshal(raw, &b); err != nil {
		return nil, err
	}
	if b.Name == "" || len(b.Sentences) == 0 {
		return nil, fmt.Errorf("batch %s: needs a name and sentences", path)
	}
	return &b, nil
}

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	if len(cfg.Args) != 1 {
		log.Fatal().Msg("usage: linkcount [flags] batch.yaml")
	}
	batchPath := cfg.Args[0]

	batch, err := loadBatch(batchPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading batch")
	}
	islandsOk := cfg.IslandsOk
	if batch.IslandsOk != nil {
		islandsOk = *batch.IslandsOk
	}
	maxNull := cfg.MaxNullCount
	if batch.MaxNullCount != nil {
		maxNull = *batch.MaxNullCount
	}

	store, err := countdb.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("opening results db")
	}
	defer store.Close()

	// The engine is single-threaded per sentence; parallelism is across
	// sentences, one count context per goroutine.
	var g errgroup.Group
	g.SetLimit(cfg.Workers)
	results := make([][]countdb.Result, len(batch.Sentences))

	for i, bs := range batch.Sentences {
		i, bs := i, bs
		g.Go(func() error {
			resp, err := countserver.CountSentence(bs.Spec, maxNull,
				islandsOk, cfg.MaxParseTime)
			if err != nil {
				return fmt.Errorf("sentence %q: %w", bs.Name, err)
			}
			rows := make([]countdb.Result, 0, len(resp.Counts))
			for nc, linkages := range resp.Counts {
				rows = append(rows, countdb.Result{
					Batch:     batch.Name,
					Sentence:  bs.Name,
					Spec:      bs.Spec,
					NullCount: nc,
					Linkages:  linkages,
					Exhausted: resp.Exhausted,
					Duration:  time.Duration(resp.DurationMs) * time.Millisecond,
				})
			}
			results[i] = rows
			log.Info().Str("sentence", bs.Name).
				Ints64("counts", resp.Counts).
				Bool("exhausted", resp.Exhausted).Msg("counted")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("batch failed")
	}

	var all []countdb.Result
	for _, rows := range results {
		all = append(all, rows...)
	}
	if err := store.WriteResults(all); err != nil {
		log.Fatal().Err(err).Msg("writing results")
	}
	log.Info().Int("sentences", len(batch.Sentences)).
		Str("db", cfg.DBPath).Msg("batch done")
}
