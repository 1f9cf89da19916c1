package main

import (
	"os"

	"github.com/leofalp/scrapego/internal/cli"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
