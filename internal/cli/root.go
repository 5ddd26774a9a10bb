package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/davidMuir/clean-deps/internal/version"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "clean-deps [path]",
	Short: "clean-deps - Find and remove project build and dependency directories",
	Long: `clean-deps scans a directory tree for project roots (Cargo.toml, *.sln,
*.csproj, package.json), reports how much space their build and dependency
directories (target, bin, obj, node_modules) take, and optionally deletes them.

Projects nested inside other projects are reported separately.

Example:
  clean-deps ~/src
  clean-deps ~/src --language rust --delete`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runClean,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Set version for --version flag
	rootCmd.Version = version.Short()
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .clean-deps.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable verbose output")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	flags := rootCmd.Flags()
	flags.StringP("language", "l", "", "only report projects of this ecosystem (dotnet, rust, javascript)")
	flags.BoolP("delete", "d", false, "delete dependency directories after reporting")
	flags.BoolP("yes", "y", false, "skip the deletion confirmation prompt")
	flags.Bool("dry-run", false, "show what --delete would remove without removing anything")
	flags.String("format", "text", "output format (text, json, yaml)")
	flags.String("color", "auto", "colorize output (auto, always, never)")
	flags.String("journal", "", "append a JSONL record of the run to this file")

	_ = viper.BindPFlag("language", flags.Lookup("language"))
	_ = viper.BindPFlag("delete.enabled", flags.Lookup("delete"))
	_ = viper.BindPFlag("delete.yes", flags.Lookup("yes"))
	_ = viper.BindPFlag("delete.dry_run", flags.Lookup("dry-run"))
	_ = viper.BindPFlag("output.format", flags.Lookup("format"))
	_ = viper.BindPFlag("output.color", flags.Lookup("color"))
	_ = viper.BindPFlag("journal", flags.Lookup("journal"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error getting working directory:", err)
			os.Exit(1)
		}

		viper.AddConfigPath(cwd)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".clean-deps")
	}

	viper.SetEnvPrefix("CLEAN_DEPS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else if cfgFile != "" {
		fmt.Fprintln(os.Stderr, "Error reading config file:", err)
		os.Exit(1)
	}
}
