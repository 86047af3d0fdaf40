package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SoLoVisionLLC/image-generator-mcp-server/internal/config"
	"github.com/SoLoVisionLLC/image-generator-mcp-server/internal/diag"
	"github.com/SoLoVisionLLC/image-generator-mcp-server/internal/provider"
	"github.com/SoLoVisionLLC/image-generator-mcp-server/internal/server"
	"github.com/SoLoVisionLLC/image-generator-mcp-server/internal/storage"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-generator-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-generator-mcp - MCP server that generates images from prompts")
			fmt.Println()
			fmt.Println("Usage: image-generator-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from ./.env):")
			fmt.Println("  OPENAI_API_KEY                  OpenAI key for direct generation")
			fmt.Println("  OPENAI_BASE_URL                 Override the OpenAI API endpoint")
			fmt.Println("  IMAGE_GEN_HOSTED_URL            Override the hosted generation endpoint")
			fmt.Println("  IMAGE_GEN_SIZE=1024x1024        Image size for direct generation")
			fmt.Println("  IMAGE_GEN_OUTPUT_SUBDIR=...     Folder under ~/Desktop for saved images")
			fmt.Println("  IMAGE_MCP_LOG_LEVEL=debug       Enable debug logging")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	diag.SetDebug(cfg.Debug)
	diag.Debugf("Image Generator MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)

	saver, err := storage.NewDesktopSaver(cfg.OutputSubdir)
	if err != nil {
		log.Fatalf("Output directory error: %v", err)
	}

	opts := cfg.ProviderOptions()
	srv := server.New(saver, func(useHosted bool) provider.Generator {
		return provider.New(useHosted, opts)
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Image Generator MCP server running on stdio")
	log.Printf("Server version: %s", server.ServerVersion)
	log.Printf("Server started at: %s", time.Now().UTC().Format(time.RFC3339))

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
