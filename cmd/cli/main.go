package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/guwidoe/PeopleDistributor/internal/model"
	"github.com/guwidoe/PeopleDistributor/internal/pb"
)

func main() {
	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the input file (.json or .yaml)")
	workersPtr := flag.Int("workers", 0, "Number of parallel solver workers; 0 uses the input's value or every CPU")
	timeLimitPtr := flag.Float64("time-limit", 0, "Wall-clock budget in seconds; overrides the input's value when positive")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	flag.Parse()
	filePath := *filePathPtr
	outFile := *outFilePathPtr

	// Validate arguments
	if filePath == "" {
		log.Fatal("an input file must be specified")
	}

	// Extract input
	var input model.ProblemInput
	var err error
	if strings.HasSuffix(filePath, ".yaml") || strings.HasSuffix(filePath, ".yml") {
		input, err = model.InputFromYAML(filePath)
	} else {
		input, err = model.InputFromJSON(filePath)
	}
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}
	if *workersPtr > 0 {
		input.Workers = *workersPtr
	}
	if input.Workers == 0 {
		input.Workers = runtime.NumCPU()
	}
	if *timeLimitPtr > 0 {
		input.TimeLimitSeconds = *timeLimitPtr
	}

	// Initialize engines
	solver := pb.NewGophersatSolver(input.Workers)
	scheduler := model.NewScheduler(solver)

	// Build schedule
	result, err := scheduler.Build(context.Background(), input)
	if err != nil {
		log.Fatalf("an error occurred during schedule construction: %v", err)
	}
	if result.Schedule == nil {
		fmt.Printf("Status: %v\n", result.Status)
		os.Exit(20)
	}

	// Verify schedule correctness
	if !scheduler.Verify(result, input) {
		os.Exit(15)
	}

	// Marshal output into json
	output := map[string]any{
		"status":         result.Status.String(),
		"objectiveValue": result.ObjectiveValue,
		"uniqueContacts": result.UniqueContacts,
		"totalPenalty":   result.TotalPenalty,
		"schedule":       result.Schedule,
	}
	outputJson, err := json.Marshal(output)
	if err != nil {
		log.Fatalf("an error occurred while building output json: %v", err)
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		fmt.Println(string(outputJson))
	} else {
		err := os.WriteFile(outFile, outputJson, 0666)
		if err != nil {
			log.Fatalf("an error occurred while writing to the output file: %v", err)
		}
	}
}
