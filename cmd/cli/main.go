package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/imd-care/care-reports/pkg/runtime/export"
	"github.com/imd-care/care-reports/pkg/runtime/terminal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli := terminal.NewCLI(terminal.Options{
		Exporters: export.DefaultRegistry(),
		Output:    os.Stdout,
	})

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
