// Package main provides a CLI that computes a fan chart for an assumption set and
// prints it as JSON, Markdown or an HTML report.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"dcf_fanchart/pkg/core/analysis"
	"dcf_fanchart/pkg/core/assumption"
	"dcf_fanchart/pkg/core/config"
	"dcf_fanchart/pkg/core/pipeline"
	"dcf_fanchart/pkg/core/report"
	"dcf_fanchart/pkg/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("fanchart", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		assumptionsArg string
		configPath     string
		format         string
		title          string
		historyKind    string
		logLevel       string
		horizon        int
		seed           uint64
		price          float64
	)
	flags.StringVar(&assumptionsArg, "assumptions", "", "assumption file, or an inline JSON/Hjson object (default: reference defaults)")
	flags.StringVar(&configPath, "config", "config/fanchart.yaml", "model config file (missing file uses built-in defaults)")
	flags.StringVar(&format, "format", "json", "output format (json, markdown, html)")
	flags.StringVar(&title, "title", "", "report title (markdown, html)")
	flags.StringVar(&historyKind, "history", "", "historical series kind (random_walk, seasonal)")
	flags.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.IntVar(&horizon, "horizon", 0, "projection periods (default from config)")
	flags.Uint64Var(&seed, "seed", 0, "random walk seed (default from config)")
	flags.Float64Var(&price, "price", 0, "current share price for the football field (default from config)")

	if err := flags.Parse(args); err != nil {
		return err
	}
	set := map[string]bool{}
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })

	log := logger.New(logger.Config{Level: logLevel, Output: stderr})

	model, err := config.LoadModel(configPath)
	if err != nil {
		return err
	}

	var in analysis.Input
	if assumptionsArg != "" {
		values, err := loadAssumptions(assumptionsArg)
		if err != nil {
			return err
		}
		in.Assumptions = values
	}
	if set["horizon"] {
		in.Horizon = &horizon
	}
	if set["seed"] || set["history"] {
		in.History = &pipeline.HistoryParams{Kind: historyKind}
		if set["seed"] {
			in.History.Seed = &seed
		}
	}
	if set["price"] {
		in.CurrentPrice = &price
	}

	res, err := analysis.NewEngine(model, log).Analyze(in)
	if err != nil {
		return err
	}
	log.Info().Str("id", res.ID).Str("format", format).Msg("Fan chart computed")

	doc := report.Input{Title: title, Chart: res.FanChart, Valuations: res.Valuations, Field: &res.FootballField}
	switch format {
	case "json":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "markdown", "md":
		md, err := report.Markdown(doc)
		if err != nil {
			return err
		}
		_, err = io.WriteString(stdout, md)
		return err
	case "html":
		html, err := report.HTML(doc)
		if err != nil {
			return err
		}
		_, err = io.WriteString(stdout, html)
		return err
	default:
		return fmt.Errorf("unknown format %q (want json, markdown or html)", format)
	}
}

// loadAssumptions reads arg as a file path, or as the document itself when it looks
// like an inline object or no such file exists.
func loadAssumptions(arg string) (map[string]float64, error) {
	data := []byte(arg)
	if !strings.HasPrefix(strings.TrimSpace(arg), "{") {
		content, err := os.ReadFile(arg)
		switch {
		case err == nil:
			data = content
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("read assumptions: %w", err)
		}
	}
	s, err := assumption.FromJSON(data)
	if err != nil {
		return nil, err
	}
	return s.Values, nil
}
