package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kbukum/voicefeedback/credential"
	"github.com/kbukum/voicefeedback/feedback"
	"github.com/kbukum/voicefeedback/util"
)

func newLoginCommand(opts *rootOptions) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to feedbackd and store the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			in := bufio.NewReader(cmd.InOrStdin())

			if username == "" {
				fmt.Fprint(out, "Username: ")
				if username, err = readLine(in); err != nil {
					return err
				}
			}
			secret, err := readPassword(cmd.InOrStdin(), in, out)
			if err != nil {
				return err
			}

			client, err := feedback.NewClient(e.cfg.Server, credential.StaticToken(""), e.log)
			if err != nil {
				return err
			}
			resp, err := client.Login(cmd.Context(), username, secret)
			if err != nil {
				return err
			}
			err = e.store.Save(cmd.Context(), credential.Credential{
				Token:     resp.Token,
				Username:  username,
				ServerURL: e.cfg.Server.BaseURL,
				ExpiresAt: resp.ExpiresAt,
			})
			if err != nil {
				return err
			}
			e.log.Debug("Credential stored", map[string]interface{}{
				"path":  e.store.Path(),
				"token": util.MaskSecret(resp.Token, 6),
			})
			_, err = fmt.Fprintf(out, "Logged in as %s.\n", username)
			return err
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account name")
	return cmd
}

func newLogoutCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.load()
			if err != nil {
				return err
			}
			if err := e.store.Clear(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return err
		},
	}
}

// readPassword reads without echo from a terminal, otherwise one line
// from the buffered reader.
func readPassword(raw io.Reader, buffered *bufio.Reader, out io.Writer) (string, error) {
	if f, ok := raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return readLine(buffered)
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("no input")
	}
	return line, nil
}
