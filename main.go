package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"recsim/simulation"
)

func main() {
	metadata := simulation.DefaultScenarioMetadata()

	args := os.Args
	if len(args) < 3 {
		log.Fatalf("usage: %s <base-path> <metadata-json>", args[0])
	}
	basePath := args[1]
	metadataPath := args[2]

	metadataJson, err := os.ReadFile(metadataPath)
	if err != nil {
		log.Fatalf("Failed to load metadata file: %v", err)
	}

	err = json.Unmarshal(metadataJson, metadata)
	if err != nil {
		log.Fatalf("Failed to unmarshal metadata file: %v", err)
	}

	if err := metadata.Validate(); err != nil {
		log.Fatalf("Invalid metadata: %v", err)
	}

	experiment := simulation.NewExperiment(basePath, metadata)
	report, err := experiment.Run()
	if err != nil {
		log.Fatalf("Experiment failed: %v", err)
	}

	fmt.Printf("%-10s %-14s %s\n", "policy", "mean rate", "wins over random")
	for _, name := range report.Series.Policies {
		wins := "-"
		if name != "random" {
			wins = fmt.Sprintf("%d/%d", report.WinsOverRandom[name], metadata.TrialCount)
		}
		fmt.Printf("%-10s %-14.4f %s\n", name, report.MeanRate[name], wins)
	}
}
