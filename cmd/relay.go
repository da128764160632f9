package cmd

import (
	"fmt"
	"os"

	"github.com/cinelink/cinelink/color"
	"github.com/cinelink/cinelink/filesystem"
	"github.com/cinelink/cinelink/icon"
	"github.com/cinelink/cinelink/relay"
	"github.com/cinelink/cinelink/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(relayCmd)

	relayCmd.Flags().StringP("output", "o", "", "Write the body to this file instead of stdout")
	relayCmd.Flags().Bool("check", false, "Only report whether the host is allowlisted")
}

var relayCmd = &cobra.Command{
	Use:   "relay <url>",
	Short: "Fetch a URL through the relay rules",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		gateway := relay.FromConfig()

		if lo.Must(cmd.Flags().GetBool("check")) {
			checkHost(gateway, args[0])
			return
		}

		payload, err := gateway.Relay(cmd.Context(), args[0])
		if err != nil {
			handleErr(fmt.Errorf("%s (status %d)", err, relay.StatusCode(err)))
		}

		output := lo.Must(cmd.Flags().GetString("output"))
		if output == "" {
			_, err := os.Stdout.Write(payload.Body)
			handleErr(err)
			return
		}

		handleErr(filesystem.API().WriteFile(output, payload.Body, 0o644))
		_, _ = fmt.Fprintf(
			os.Stderr,
			"%s wrote %d bytes of %s to %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			len(payload.Body),
			payload.ContentType,
			output,
		)
	},
}

func checkHost(gateway *relay.Gateway, target string) {
	u, err := relay.ParseTarget(target)
	handleErr(err)

	if gateway.Allowed(u.Hostname()) {
		fmt.Printf("%s %s is allowed\n", style.Fg(color.Green)(icon.Get(icon.Success)), u.Hostname())
		return
	}

	handleErr(fmt.Errorf("%s is not allowlisted", u.Hostname()))
}
