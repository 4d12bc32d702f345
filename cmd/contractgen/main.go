package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/teranos/contractgen/cmd/contractgen/cmd"
	"github.com/teranos/contractgen/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ran, err := cmd.RootCmd.ExecuteContextC(ctx)
	if err == nil {
		return
	}
	stop()

	if errors.IsOutOfDate(err) {
		fmt.Fprintln(os.Stderr, "Generated files are out of date")
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
	}
	if ran == cmd.CheckCmd {
		os.Exit(2)
	}
	os.Exit(1)
}
