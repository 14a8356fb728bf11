package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"campusnet-service/internal/app"
)

func main() {
	ctx := context.Background()

	application, cleanup, err := app.InitializeApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize application: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "service terminated with error: %v\n", err)
		os.Exit(1)
	}
}
