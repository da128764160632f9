// Package cmd implements the cinelink command-line interface.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cinelink/cinelink/color"
	"github.com/cinelink/cinelink/constant"
	"github.com/cinelink/cinelink/icon"
	"github.com/cinelink/cinelink/key"
	"github.com/cinelink/cinelink/log"
	"github.com/cinelink/cinelink/provider"
	"github.com/cinelink/cinelink/style"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Icon variant: "+strings.Join(icon.AvailableVariants(), ", "))
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("provider", "P", "", "Provider backend to resolve with")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("provider", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(provider.Builtins(), func(p *provider.Provider, _ int) string {
			return p.Name
		}), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.ProviderDefault, rootCmd.PersistentFlags().Lookup("provider")))
}

var rootCmd = &cobra.Command{
	Use:   constant.Cinelink,
	Short: "Resolve catalog titles into provider stream links",
	Long: style.New().Bold(true).Foreground(color.HiPurple).Render(constant.Cinelink) + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Resolve catalog titles into provider stream links and relay them safely"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		handleErr(cmd.Help())
	},
}

// Execute runs the root command.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(
			os.Stderr,
			"%s %s\n",
			style.Fg(color.Red)(icon.Get(icon.Fail)),
			strings.Trim(err.Error(), " \n"),
		)
		os.Exit(1)
	}
}
