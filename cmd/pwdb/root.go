package main

import (
	"github.com/spf13/cobra"

	"github.com/ericfisherdev/pwdb/internal/application"
	"github.com/ericfisherdev/pwdb/internal/config"
)

// app carries the dependencies shared by every subcommand.
type app struct {
	cfg    *config.Config
	vault  *application.VaultService
	prompt *prompter

	dbPath      string
	showSecrets bool
}

func newRootCmd(cfg *config.Config, vault *application.VaultService) *cobra.Command {
	a := &app{cfg: cfg, vault: vault}

	root := &cobra.Command{
		Use:   "pwdb",
		Short: "Password-protected credential store",
		Long: `pwdb keeps credentials (username, secret, URL, notes) in a single file
encrypted with a key derived from your passphrase.

Every record is sealed on its own and the whole file is sealed again, so a
wrong passphrase or any modification of the file is detected on open.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.prompt = newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVarP(&a.dbPath, "db", "d", cfg.DBPath, "database path; .pwdb is appended if missing")
	root.PersistentFlags().BoolVar(&a.showSecrets, "show-secrets", cfg.ShowSecrets, "print secrets in list and search output")

	root.AddCommand(
		a.newCreateCmd(),
		a.newListCmd(),
		a.newGetCmd(),
		a.newAddCmd(),
		a.newEditCmd(),
		a.newRemoveCmd(),
		a.newSearchCmd(),
		a.newInfoCmd(),
	)
	return root
}

// withStore prompts for the passphrase, opens the database, runs fn, saves
// if requested, and always closes the store. Nothing is saved if fn fails.
func (a *app) withStore(save bool, fn func(*application.Store) error) (err error) {
	passphrase, err := a.prompt.Secret("Passphrase: ")
	if err != nil {
		return err
	}

	store, err := a.vault.Open(a.dbPath, passphrase)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := fn(store); err != nil {
		return err
	}
	if save {
		return a.vault.Save(store)
	}
	return nil
}
