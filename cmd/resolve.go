package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/cinelink/cinelink/color"
	"github.com/cinelink/cinelink/icon"
	"github.com/cinelink/cinelink/provider"
	"github.com/cinelink/cinelink/resolve"
	"github.com/cinelink/cinelink/source"
	"github.com/cinelink/cinelink/style"
	"github.com/cinelink/cinelink/util"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	envUsername = "CINELINK_USERNAME"
	envPassword = "CINELINK_PASSWORD"
)

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringP("username", "u", "", "Provider username, or set "+envUsername)
	resolveCmd.Flags().StringP("title", "t", "", "Search this title instead of looking the id up in the catalog")
	resolveCmd.Flags().BoolP("json", "j", false, "Print the response as JSON")
	resolveCmd.Flags().Bool("schema", false, "Print the JSON schema of the response and exit")

	resolveCmd.SetOut(os.Stdout)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <movie|series> <external id>",
	Short: "Resolve a catalog id to stream links",
	Long: `Resolve a catalog id to stream links.

Series ids may carry a season and episode: tt0944947:2:3.
The password is read from ` + envPassword + ` or asked for interactively.`,
	Example: "  cinelink resolve movie tt1375666 -u me\n  cinelink resolve series tt0944947:1:2 --json",
	Args: func(cmd *cobra.Command, args []string) error {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			return nil
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			reflector := new(jsonschema.Reflector)
			reflector.Anonymous = true
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(reflector.Reflect(&resolve.Response{})))
			return
		}

		kind, err := source.ParseKind(args[0])
		handleErr(err)

		creds, err := credentials(cmd)
		handleErr(err)

		var resp resolve.Response
		if title := lo.Must(cmd.Flags().GetString("title")); title != "" {
			resp = resolveTitle(cmd.Context(), creds, kind, title, args[1])
		} else {
			resp = resolve.ServiceFromConfig().Streams(cmd.Context(), creds, kind, args[1])
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(resp))
			return
		}

		printResponse(cmd, resp)
	},
}

func resolveTitle(ctx context.Context, creds source.Credentials, kind source.Kind, title, externalID string) resolve.Response {
	p, err := provider.Default()
	if err != nil {
		return resolve.Response{Streams: []source.StreamLink{}, Message: resolve.Message(err), Err: err}
	}

	links, err := resolve.NewClient(p).Resolve(ctx, creds, kind, title, externalID)
	return resolve.Response{Streams: links, Message: resolve.Message(err), Err: err}
}

// credentials come from flags and env first. Only a missing password is
// prompted for, and only on a terminal.
func credentials(cmd *cobra.Command) (source.Credentials, error) {
	creds := source.Credentials{
		Username: lo.Must(cmd.Flags().GetString("username")),
		Password: os.Getenv(envPassword),
	}
	if creds.Username == "" {
		creds.Username = os.Getenv(envUsername)
	}

	if creds.Password != "" || !term.IsTerminal(int(os.Stdin.Fd())) {
		return creds, nil
	}

	if creds.Username == "" {
		if err := survey.AskOne(&survey.Input{Message: "Provider username"}, &creds.Username); err != nil {
			return creds, err
		}
	}

	prompt := &survey.Password{Message: fmt.Sprintf("Password for %s", creds.Username)}
	if err := survey.AskOne(prompt, &creds.Password); err != nil {
		return creds, err
	}

	return creds, nil
}

func printResponse(cmd *cobra.Command, resp resolve.Response) {
	if resp.Message != "" {
		mark := icon.Get(icon.Fail)
		if resolve.IsAuthProblem(resp.Err) {
			mark = icon.Get(icon.Lock)
		}
		cmd.Println(style.Fg(color.Yellow)(strings.TrimSpace(mark + " " + resp.Message)))
	}

	if len(resp.Streams) == 0 {
		if resp.Err != nil && !errors.Is(resp.Err, source.ErrNoMatch) {
			cmd.Println(style.Faint(resp.Err.Error()))
		}
		return
	}

	cmd.Println(style.Bold(util.Quantify(len(resp.Streams), "stream", "streams")))
	for _, l := range resp.Streams {
		cmd.Printf("%s %s\n  %s\n", style.Fg(color.Green)(icon.Get(icon.Link)), l.Title, style.Faint(l.URL))
	}
}
