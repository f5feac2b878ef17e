package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/snnyvrz/shelfshare/apps/library-api/internal/db"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/identity"
	"github.com/snnyvrz/shelfshare/apps/library-api/internal/repository"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var errNoPassword = errors.New("no --password given and stdin is not a terminal")

// readPassword reads a masked password from the terminal.
func readPassword(out io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errNoPassword
	}

	fmt.Fprint(out, "Password: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func newCreateUserCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an identity record that members can reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if password == "" {
				p, err := readPassword(out)
				if err != nil {
					return err
				}
				password = p
			}

			_, _, database, err := bootstrap()
			if err != nil {
				return err
			}
			defer db.Close(database)

			svc := identity.NewService(repository.NewUserRepository(database))
			u, err := svc.Register(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "created user %q with id %d\n", u.Username, u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username of the new user")
	cmd.Flags().StringVar(&password, "password", "", "password; prompted for when omitted")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}
