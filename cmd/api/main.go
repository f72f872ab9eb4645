package main

import (
	"os"

	"daycare-log/internal/platform/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title Daycare Log API
// @version 0.1
// @description Registro de eventos de cuidado por niño.
// @BasePath /
func main() {
	root := &cobra.Command{
		Use:           "daycare-log",
		Short:         "Daycare event log API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := addServe(root)
	addMigrate(root)
	addToken(root)

	// Sin subcomando: serve
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	if err := root.Execute(); err != nil {
		// todavía puede no haber config: logger desde env
		logger.NewFromEnv().Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}
