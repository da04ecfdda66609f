package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"insurecost/config"
	"insurecost/db"
	"insurecost/insurance"
	"insurecost/logging"
	"insurecost/ml"
	"insurecost/report"
	"insurecost/services"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	name := flag.String("name", "", "customer full name")
	age := flag.Int("age", 30, "age (18-65)")
	sex := flag.String("sex", "male", "male or female")
	bmi := flag.Float64("bmi", 25.0, "body mass index (10-100)")
	children := flag.Int("children", 0, "number of children (0-5)")
	smoker := flag.String("smoker", "yes", "yes or no")
	save := flag.Bool("save", false, "store the prediction in the database")
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

	model, err := ml.LoadModel(cfg.ML.ModelType, cfg.ML.ModelPath, insurance.FeatureNames())
	if err != nil {
		log.Fatal("failed to load model", "path", cfg.ML.ModelPath, "error", err)
	}

	input := insurance.CustomerInput{
		Name:     *name,
		Age:      *age,
		Sex:      insurance.Sex(*sex),
		BMI:      *bmi,
		Children: *children,
		Smoker:   insurance.SmokerStatus(*smoker),
	}
	if err := input.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		os.Exit(2)
	}

	locale := report.NewLocale(cfg.Report.Locale)
	var store services.PredictionStore
	if *save {
		gateway, err := db.FromConfig(cfg.Database)
		if err != nil {
			log.Fatal("invalid database config", "error", err)
		}
		store = gateway
	}
	svc := services.NewPredictionService(model, store, nil, log)

	ctx := context.Background()
	if !*save {
		charges, features, err := svc.Predict(ctx, input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("features %v\n", features.Vector())
		fmt.Printf("predicted premium: %s\n", locale.FormatPremium(charges))
		return
	}

	rec, err := svc.Submit(ctx, input)
	if err != nil {
		var serr *insurance.StorageError
		if errors.As(err, &serr) {
			fmt.Fprintf(os.Stderr, "error: could not save prediction (%s): %v\n", serr.Op, serr.Err)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
	fmt.Printf("features %v\n", rec.Features().Vector())
	fmt.Printf("predicted premium: %s\n", locale.FormatPremium(rec.PredictedCharges))
	fmt.Printf("saved as prediction #%d\n", rec.ID)
}
