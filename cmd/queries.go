package cmd

import (
	"os"
	"strings"

	"github.com/cinelink/cinelink/color"
	"github.com/cinelink/cinelink/query"
	"github.com/cinelink/cinelink/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(queriesCmd)
	queriesCmd.Flags().IntP("limit", "n", 10, "Maximum number of suggestions")
	queriesCmd.SetOut(os.Stdout)
}

var queriesCmd = &cobra.Command{
	Use:   "queries [text]",
	Short: "Suggest previously resolved titles",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		suggestions := query.SuggestMany(strings.Join(args, " "))
		limit := lo.Must(cmd.Flags().GetInt("limit"))
		if limit > 0 && len(suggestions) > limit {
			suggestions = suggestions[:limit]
		}

		for _, s := range suggestions {
			cmd.Println(style.Fg(color.Purple)(s))
		}
	},
}
