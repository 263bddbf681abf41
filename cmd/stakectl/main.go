package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	rootCmd, err := createRootCmd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build commands: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "alert: %v\n", err)
		os.Exit(1)
	}
}
