// Command authshell drives the sign-in shell from a terminal.
//
//	authshell signin google|facebook
//	authshell signout google|facebook
//	authshell status
//	authshell profile
//	authshell dashboard
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"social_media_auth/internal/config"
	"social_media_auth/internal/platform/logger"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// Used until the configured logger exists.
	boot := logger.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		boot.Fatal("Failed to load configuration", zap.Error(err))
	}

	sh, cleanup, err := initializeShell(cfg)
	if err != nil {
		boot.Fatal("Failed to initialize shell", zap.Error(err))
	}
	_ = boot.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = sh.run(ctx, os.Args[1], os.Args[2:])
	stop()
	cleanup()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
