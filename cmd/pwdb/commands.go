package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ericfisherdev/pwdb/internal/application"
	"github.com/ericfisherdev/pwdb/internal/domain/model"
	"github.com/ericfisherdev/pwdb/internal/domain/port/driven"
)

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, usageErrorf("index must be a whole number, got %q", s)
	}
	return i, nil
}

func (a *app) newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new, empty database",
		Long: `Create a new, empty database at --db, asking for the passphrase twice.

An existing file is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			passphrase, err := a.prompt.NewPassphrase()
			if err != nil {
				return err
			}
			path, err := a.vault.Create(a.dbPath, passphrase)
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Created %s", path)
			return nil
		},
	}
}

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all entries (secrets masked unless --show-secrets)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(false, func(store *application.Store) error {
				records, err := store.List()
				if err != nil {
					return err
				}
				if len(records) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No entries found.")
					return nil
				}
				return printRecords(cmd.OutOrStdout(), indexed(records), a.showSecrets)
			})
		},
	}
}

func (a *app) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <index>",
		Short: "Show one entry, including its secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return a.withStore(false, func(store *application.Store) error {
				r, err := store.Get(index)
				if err != nil {
					return err
				}
				return printRecord(cmd.OutOrStdout(), index, r)
			})
		},
	}
}

// recordFlags binds the per-field flags shared by add and edit.
type recordFlags struct {
	username, secret, url, notes string
	promptSecret                 bool
}

func (f *recordFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.username, "username", "u", "", "username")
	cmd.Flags().StringVar(&f.secret, "secret", "", "secret (visible in shell history; prefer the prompt)")
	cmd.Flags().StringVar(&f.url, "url", "", "URL")
	cmd.Flags().StringVarP(&f.notes, "notes", "n", "", "free-form notes")
}

func (a *app) newAddCmd() *cobra.Command {
	var f recordFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entry",
		Long: `Add an entry and save the database.

The secret is prompted for without echo unless --secret is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := model.Record{Username: f.username, Secret: f.secret, URL: f.url, Notes: f.notes}
			return a.withStore(true, func(store *application.Store) error {
				if !cmd.Flags().Changed("secret") {
					secret, err := a.prompt.Secret("Secret: ")
					if err != nil {
						return err
					}
					r.Secret = secret
				}
				if err := store.Add(r); err != nil {
					return err
				}
				n, err := store.Len()
				if err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "Added entry %d", n-1)
				return nil
			})
		},
	}
	f.bind(cmd)
	return cmd
}

func (a *app) newEditCmd() *cobra.Command {
	var f recordFlags
	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Change fields of an entry",
		Long: `Change the given fields of an entry and save the database.

Fields without a flag keep their current value. Use --prompt-secret to enter
a new secret without echo.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return a.withStore(true, func(store *application.Store) error {
				r, err := store.Get(index)
				if err != nil {
					return err
				}
				flags := cmd.Flags()
				if flags.Changed("username") {
					r.Username = f.username
				}
				if flags.Changed("secret") {
					r.Secret = f.secret
				}
				if flags.Changed("url") {
					r.URL = f.url
				}
				if flags.Changed("notes") {
					r.Notes = f.notes
				}
				if f.promptSecret {
					secret, err := a.prompt.Secret("New secret: ")
					if err != nil {
						return err
					}
					r.Secret = secret
				}
				if err := store.Replace(index, r); err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "Updated entry %d", index)
				return nil
			})
		},
	}
	f.bind(cmd)
	cmd.Flags().BoolVar(&f.promptSecret, "prompt-secret", false, "prompt for a new secret")
	cmd.MarkFlagsMutuallyExclusive("secret", "prompt-secret")
	return cmd
}

func (a *app) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <index>",
		Aliases: []string{"rm"},
		Short:   "Remove an entry",
		Long: `Remove an entry and save the database.

Entries after it move down by one index.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return a.withStore(true, func(store *application.Store) error {
				if err := store.Remove(index); err != nil {
					return err
				}
				printSuccess(cmd.OutOrStdout(), "Removed entry %d", index)
				return nil
			})
		},
	}
}

func (a *app) newSearchCmd() *cobra.Command {
	var fieldName string
	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Find entries whose field contains a term (case-sensitive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, ok := model.ParseField(fieldName)
			if !ok {
				return fmt.Errorf("field %q: %w", fieldName, driven.ErrUnknownField)
			}
			term := args[0]
			if term == "" {
				return driven.ErrEmptySearchTerm
			}
			return a.withStore(false, func(store *application.Store) error {
				matches, err := store.Search(field, term)
				if err != nil {
					return err
				}
				if len(matches) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No entries found.")
					return nil
				}
				return printRecords(cmd.OutOrStdout(), matches, a.showSecrets)
			})
		},
	}
	cmd.Flags().StringVarP(&fieldName, "field", "f", string(model.FieldUsername), "field to search: username, secret, url, notes")
	return cmd
}

func (a *app) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show database metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(false, func(store *application.Store) error {
				info, err := store.Info()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Path:     %s\n", info.Path)
				fmt.Fprintf(out, "Created:  %s (%s)\n", info.Created.Local().Format("2006-01-02 15:04:05"), humanize.Time(info.Created))
				fmt.Fprintf(out, "Version:  %s\n", info.Version)
				fmt.Fprintf(out, "Entries:  %d\n", info.Entries)
				if st, err := os.Stat(info.Path); err == nil {
					fmt.Fprintf(out, "Size:     %s\n", humanize.Bytes(uint64(st.Size())))
				}
				return nil
			})
		},
	}
}
