package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"smart-api-client/internal/classify"
	"smart-api-client/internal/collector"
	"smart-api-client/internal/config"
	"smart-api-client/internal/executor"
	"smart-api-client/internal/llm"
	"smart-api-client/internal/logger"
	"smart-api-client/internal/parser"
	"smart-api-client/internal/workflow"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to application config")
	llmConfigPath := flag.String("llm-config", "config/llm.json", "Path to LLM config")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	llmCfg, err := llm.LoadConfig(*llmConfigPath)
	if err != nil {
		fmt.Printf("No LLM config loaded (%v); using defaults\n", err)
		llmCfg = llm.NewDefaultConfig()
	}

	runLog, err := logger.NewLogger(cfg.Logging.Dir)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer runLog.Close()

	textClient, err := llm.NewClient(llmCfg, runLog)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}

	timeout := time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second
	ctx := context.Background()

	store := parser.NewSpecStore(cfg.Environment.BaseURL, timeout)
	if err := store.Load(ctx); err != nil {
		log.Fatalf("Failed to load OpenAPI document: %v", err)
	}

	wf := workflow.New(
		workflow.Config{
			BaseURL:       cfg.Environment.BaseURL,
			LoginPath:     cfg.Workflow.LoginPath,
			LoginMethod:   cfg.Workflow.LoginMethod,
			JobsPath:      cfg.Workflow.JobsPath,
			JobStatusPath: cfg.Workflow.JobStatusPath,
			MaxRepairs:    cfg.Workflow.Repair.MaxAttempts,
		},
		store,
		collector.New(textClient, collector.ConsoleInput{}),
		executor.NewDispatcher(timeout),
		classify.New(textClient),
		textClient,
		runLog,
	)

	if err := wf.Run(ctx); err != nil {
		// Transport and input failures end the workflow, not the process
		// with a stack trace.
		fmt.Printf("Workflow aborted: %v\n", err)
		return
	}

	fmt.Println("Workflow completed.")
}
