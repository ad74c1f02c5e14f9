package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tphakala/go-tmv1/cmd/tmv1/commands"
)

var rootCmd = &cobra.Command{
	Use:   "tmv1",
	Short: "Trend Micro Vision One CLI",
	Long: `A command-line interface for the Trend Micro Vision One API.

Configuration is read from flags, TMV1_* environment variables and
$HOME/.tmv1/config.yml, in that order of precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.tmv1/config.yml)")
	rootCmd.PersistentFlags().StringP("url", "u", "", "Vision One API URL, e.g. https://api.xdr.trendmicro.com")
	rootCmd.PersistentFlags().StringP("token", "t", "", "Vision One API token")
	rootCmd.PersistentFlags().String("app-name", "tmv1-cli", "application name reported in the User-Agent")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log requests and responses to stderr")
	rootCmd.PersistentFlags().Duration("timeout", 0, "connect and read timeout (default 30s)")

	for _, name := range []string{"config", "url", "token", "app-name", "output", "verbose", "timeout"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	rootCmd.AddCommand(commands.NewVersionCommand())
	rootCmd.AddCommand(commands.NewConnectivityCommand())
	rootCmd.AddCommand(commands.NewAlertsCommand())
	rootCmd.AddCommand(commands.NewEndpointsCommand())
	rootCmd.AddCommand(commands.NewTasksCommand())
	rootCmd.AddCommand(commands.NewSandboxCommand())
	rootCmd.AddCommand(commands.NewSearchCommand())
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		viper.AddConfigPath(filepath.Join(home, ".tmv1"))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("TMV1")
	viper.SetEnvKeyReplacer(commands.EnvKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
