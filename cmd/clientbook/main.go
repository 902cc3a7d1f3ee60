package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/clientbook/clientbook/internal/commands"
)

func main() {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
