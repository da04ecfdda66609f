package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"insurecost/chart"
	"insurecost/config"
	"insurecost/db"
	"insurecost/logging"
	"insurecost/report"
	"insurecost/services"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	outDir := flag.String("out", "./charts", "directory for the PNG charts")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logging.New(logging.Options{Level: "warn", Mode: cfg.Log.Mode})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	gateway, err := db.FromConfig(cfg.Database)
	if err != nil {
		log.Fatal("invalid database config", "error", err)
	}
	locale := report.NewLocale(cfg.Report.Locale)
	svc := services.NewReportingService(gateway, locale, log)

	rep, err := svc.Report(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load stored predictions: %v\n", err)
		os.Exit(1)
	}
	if rep.Empty() {
		fmt.Println(locale.Titles.NoData)
		return
	}

	printSummary(rep, locale)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal("failed to create output dir", "dir", *outDir, "error", err)
	}
	for _, name := range chart.Names() {
		path := filepath.Join(*outDir, name+".png")
		err := writeChart(path, name, *rep.Summary, locale)
		var derr *chart.NotDrawableError
		if errors.As(err, &derr) {
			os.Remove(path)
			fmt.Printf("skipped %s: %v\n", name, derr)
			continue
		}
		if err != nil {
			log.Fatal("failed to render chart", "chart", name, "error", err)
		}
		fmt.Printf("wrote %s\n", path)
	}
}

func printSummary(rep *services.Report, locale report.Locale) {
	fmt.Printf("%-4s %-20s %4s %4s %6s %8s %6s %16s\n", "id", "name", "age", "sex", "bmi", "children", "smoker", "premium")
	for _, r := range rep.Records {
		fmt.Printf("%-4d %-20s %4d %4d %6.2f %8d %6d %16s\n",
			r.ID, r.Name, r.Age, r.Sex, r.BMI, r.Children, r.Smoker, locale.FormatPremium(r.PredictedCharges))
	}
	fmt.Println()
	for _, g := range []report.GroupSummary{rep.Summary.Sex, rep.Summary.Smoker} {
		for _, s := range g.Groups {
			fmt.Printf("%-12s n=%-4d (%5.1f%%)  mean %s (%5.1f%%)\n",
				s.Label, s.Count, s.CountShare, locale.FormatPremium(s.MeanCharges), s.MeanShare)
		}
	}
	fmt.Println()
}

func writeChart(path, name string, summary report.Summary, locale report.Locale) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := chart.Render(f, name, summary, locale); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
