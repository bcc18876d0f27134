// Package cli implements the touchwave command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/frudas24/touchwave/internal/config"
	"github.com/frudas24/touchwave/internal/profile"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Show gesture threshold profiles",
	Long:  "Prints the active profile set as YAML. With --init, writes the builtin presets to the profiles file so they can be edited.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// GetBool cannot fail for defined flags
		initFile, _ := cmd.Flags().GetBool("init")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if initFile {
			if fileExists(cfg.ProfilesPath) {
				return fmt.Errorf("%s already exists", cfg.ProfilesPath)
			}
			if err := profile.Save(cfg.ProfilesPath, profile.Builtin()); err != nil {
				return err
			}
			fmt.Printf("wrote builtin profiles to %s\n", cfg.ProfilesPath)
			return nil
		}

		profiles, err := profile.Load(cfg.ProfilesPath)
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(profiles)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.Flags().Bool("init", false, "write the builtin profiles to the profiles file")
}
