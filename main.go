package main

import (
	"context"
	"os"

	"github.com/insightdelivered/statement-parser/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
