// cmd/vimb/main.go
package main

import (
	"fmt"
	stlog "log"
	"os"

	"github.com/jubalh/vimb/internal/app"
	"github.com/jubalh/vimb/internal/config"
	"github.com/jubalh/vimb/internal/logger"
)

const version = "0.1.0"

func main() {
	// --- Flag & config handling ---
	flags := &config.Flags{}
	args := flags.ParseFlags()

	if flags.Version != nil && *flags.Version {
		fmt.Printf("vimb %s\n", version)
		os.Exit(0)
	}

	configPath := ""
	if flags.ConfigFilePath != nil {
		configPath = *flags.ConfigFilePath
	}
	cfg, err := config.LoadConfig(configPath, flags)
	if err != nil {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Logger initialization ---
	closeLog, err := logger.Init(cfg.Logger)
	if err != nil {
		stlog.Fatalf("Failed to initialize logger: %v", err)
	}
	defer closeLog()

	logger.Infof("starting vimb")

	startUri := ""
	if len(args) > 0 {
		startUri = args[0]
	}

	// --- Create and run app ---
	vimbApp, err := app.NewApp(cfg, startUri)
	if err != nil {
		logger.Errorf("error initializing application: %v", err)
		os.Exit(1)
	}

	if err := vimbApp.Run(); err != nil {
		logger.Errorf("application exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("vimb finished")
}
