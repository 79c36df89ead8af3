package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/ciflikli/igc-spending-insights/cmd/analyze"
	"github.com/ciflikli/igc-spending-insights/cmd/classify"
	"github.com/ciflikli/igc-spending-insights/cmd/detect"
	"github.com/ciflikli/igc-spending-insights/cmd/root"
)

func init() {
	// Load environment variables before any configuration is read
	loadEnvSilently()

	root.Init()

	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(classify.Cmd)
	root.Cmd.AddCommand(detect.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		// Try to find .env in parent directory (project root)
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
