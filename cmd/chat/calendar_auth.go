package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

func newCalendarAuthCommand() *cobra.Command {
	var credentialsPath, tokenPath string

	cmd := &cobra.Command{
		Use:   "calendar-auth",
		Short: "Authorize Google Calendar access for vehicle check reminders",
		Long: `calendar-auth runs the OAuth installed-app flow once and writes the token
used by the reminder scheduler. Run it outside containers, then restart the server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(credentialsPath)
			if err != nil {
				return fmt.Errorf("read credentials %q: %w", credentialsPath, err)
			}

			oauthCfg, err := google.ConfigFromJSON(data, calendar.CalendarScope)
			if err != nil {
				return fmt.Errorf("parse credentials %q (expected an OAuth desktop app file): %w", credentialsPath, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Open this URL in a browser and sign in with the calendar's Google account:")
			fmt.Fprintln(out)
			fmt.Fprintln(out, oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline))
			fmt.Fprintln(out)
			fmt.Fprint(out, "Paste the authorization code: ")

			var code string
			if _, err := fmt.Fscan(cmd.InOrStdin(), &code); err != nil {
				return fmt.Errorf("read authorization code: %w", err)
			}

			tok, err := oauthCfg.Exchange(cmd.Context(), strings.TrimSpace(code))
			if err != nil {
				return fmt.Errorf("exchange authorization code: %w", err)
			}

			f, err := os.OpenFile(tokenPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
			if err != nil {
				return fmt.Errorf("create %s: %w", tokenPath, err)
			}
			defer f.Close()

			if err := json.NewEncoder(f).Encode(tok); err != nil {
				return fmt.Errorf("write %s: %w", tokenPath, err)
			}

			fmt.Fprintf(out, "\nToken saved to %s\n", tokenPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&credentialsPath, "credentials", "google-credentials.json", "OAuth desktop app credentials file")
	cmd.Flags().StringVar(&tokenPath, "token", "token.json", "Where to write the token")
	return cmd
}
