package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/awnumar/memguard"

	cryptoadapter "github.com/ericfisherdev/pwdb/internal/adapter/driven/crypto"
	"github.com/ericfisherdev/pwdb/internal/adapter/driven/filestore"
	"github.com/ericfisherdev/pwdb/internal/application"
	"github.com/ericfisherdev/pwdb/internal/config"
)

func main() {
	code := run()
	memguard.Purge()
	os.Exit(code)
}

func run() int {
	// Wipe enclaves and locked buffers if the process is interrupted mid-command.
	memguard.CatchInterrupt()

	// 1. Load configuration.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "pwdb:", err)
		return ExitError
	}

	// 2. Logging goes to stderr so it never mixes with command output.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// 3. Wire adapters into the vault service.
	vault := application.NewVaultService(
		cryptoadapter.SHA256Deriver{},
		cryptoadapter.NewCipher,
		cryptoadapter.Base64Codec{},
		filestore.New(),
		logger,
	)

	// 4. Run the requested command.
	root := newRootCmd(cfg, vault)
	if err := root.Execute(); err != nil {
		printError(root.ErrOrStderr(), err)
		return exitCode(err)
	}
	return ExitSuccess
}
