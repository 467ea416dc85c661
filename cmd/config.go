package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/weblearn/weblearn/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, path, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		// Keys are secrets; show only whether they are set.
		for _, k := range []*string{
			&cfg.Assistant.LLM.Anthropic.APIKey,
			&cfg.Assistant.LLM.OpenAI.APIKey,
			&cfg.Assistant.LLM.Gemini.APIKey,
			&cfg.Assistant.LLM.OpenRouter.APIKey,
		} {
			if *k != "" {
				*k = "********"
			}
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("# %s\n%s", path, out)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			path = p
		}
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists; use --force to overwrite", path)
		}
		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Println("Wrote", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
