package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/davidMuir/clean-deps/internal/ecosystem"
	"github.com/davidMuir/clean-deps/internal/report"
)

// ConfigFilename is the config file read from the working directory.
const ConfigFilename = ".clean-deps.yaml"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a .clean-deps.yaml file with the default settings to the current
directory. Flags and CLEAN_DEPS_* environment variables still override it.

Example:
  clean-deps init
  clean-deps init --language javascript --journal ~/.clean-deps.jsonl`,
	Args: cobra.NoArgs,
	RunE: initProject,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("language", "", "default ecosystem filter")
	initCmd.Flags().String("format", report.FormatText, "default output format")
	initCmd.Flags().String("journal", "", "default journal file")
	initCmd.Flags().Bool("force", false, "Overwrite existing config")
}

type projectConfig struct {
	Path     string `yaml:"path,omitempty"`
	Language string `yaml:"language,omitempty"`
	Delete   struct {
		Enabled bool `yaml:"enabled"`
		Yes     bool `yaml:"yes"`
		DryRun  bool `yaml:"dry_run"`
	} `yaml:"delete"`
	Output struct {
		Format string `yaml:"format"`
		Color  string `yaml:"color"`
	} `yaml:"output"`
	Journal string `yaml:"journal,omitempty"`
}

func initProject(cmd *cobra.Command, args []string) error {
	return writeDefaultConfig(cmd, filepath.Join(".", ConfigFilename))
}

func writeDefaultConfig(cmd *cobra.Command, configPath string) error {
	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", configPath)
	}

	cfg := projectConfig{}
	cfg.Language, _ = cmd.Flags().GetString("language")
	cfg.Output.Format, _ = cmd.Flags().GetString("format")
	cfg.Journal, _ = cmd.Flags().GetString("journal")
	cfg.Output.Color = "auto"

	if cfg.Language != "" {
		e, err := ecosystem.Default().Parse(cfg.Language)
		if err != nil {
			return err
		}
		cfg.Language = string(e)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := `# clean-deps configuration
# Flags and CLEAN_DEPS_* environment variables override these values.

`

	if err := os.WriteFile(configPath, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configPath)
	return nil
}
