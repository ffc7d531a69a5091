package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/avelloso/reactant/agent"
	"github.com/avelloso/reactant/agent/terminal"
	"github.com/avelloso/reactant/config"
	"github.com/avelloso/reactant/llm"
	"github.com/avelloso/reactant/logging"
	"github.com/avelloso/reactant/tools"
	"github.com/joho/godotenv"
)

func main() {
	llmFlag := flag.String("llm", "", "LLM provider: 'openai', 'anthropic', 'gemini', 'bedrock', or 'mock'")
	modelFlag := flag.String("model", "", "Model name to use with the provider")
	traceFlag := flag.Bool("trace", false, "Enable debug tracing to troubleshoot issues")
	flag.Parse()

	// Provider credentials commonly live in a .env next to the project.
	// Missing file is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %+v\n", err)
		os.Exit(1)
	}
	if *llmFlag != "" {
		cfg.LLMClient = *llmFlag
	}
	if *modelFlag != "" {
		cfg.Model = *modelFlag
	}

	logger, err := logging.New(*traceFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %+v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var client llm.Client
	switch cfg.LLMClient {
	case "openai":
		client, err = llm.NewOpenAIClient(ctx, cfg.Model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing OpenAI client: %+v\n", err)
			os.Exit(1)
		}
	case "anthropic":
		client, err = llm.NewAnthropicClient(ctx, cfg.Model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing Anthropic client: %+v\n", err)
			os.Exit(1)
		}
	case "gemini":
		client, err = llm.NewGeminiClient(ctx, cfg.Model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing Gemini client: %+v\n", err)
			os.Exit(1)
		}
	case "bedrock":
		client, err = llm.NewBedrockClient(ctx, cfg.Model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing Bedrock client: %+v\n", err)
			os.Exit(1)
		}
	default:
		client = &llm.MockClient{}
	}

	registry := tools.NewRegistry(cfg)
	defer registry.Close()

	reactantAgent := agent.New(cfg, client, registry, logger)

	term := terminal.New(reactantAgent)
	if err := term.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Agent stopped with an error: %+v\n", err)
		os.Exit(1)
	}
}
