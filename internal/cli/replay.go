// Package cli implements the touchwave command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/frudas24/touchwave/internal/config"
	"github.com/frudas24/touchwave/internal/profile"
	"github.com/frudas24/touchwave/internal/trace"
	"github.com/frudas24/touchwave/internal/transport"
)

var replayCmd = &cobra.Command{
	Use:   "replay <trace-id>",
	Short: "Rerun a recorded trace through the classifier",
	Long:  "Reads a recorded contact trace and prints the gestures it produces, optionally under a different threshold profile.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// GetString cannot fail for defined flags
		profileName, _ := cmd.Flags().GetString("profile")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		profiles, err := profile.Load(cfg.ProfilesPath)
		if err != nil {
			return err
		}
		if profileName == "" {
			profileName = cfg.Profile
		}
		gcfg, ok := profiles.Resolve(profileName)
		if !ok {
			return fmt.Errorf("unknown profile %q", profileName)
		}

		store, err := trace.Open(cfg.TraceDir)
		if err != nil {
			return err
		}
		defer store.Close()

		frames, err := store.Read(args[0])
		if err != nil {
			return err
		}
		if len(frames) == 0 {
			return fmt.Errorf("trace %q not found", args[0])
		}

		for _, ev := range trace.Replay(frames, gcfg) {
			if err := printJSON(transport.EncodeEvent(ev)); err != nil {
				return err
			}
		}
		return nil
	},
}

var tracesCmd = &cobra.Command{
	Use:   "traces",
	Short: "List recorded trace identifiers",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		store, err := trace.Open(cfg.TraceDir)
		if err != nil {
			return err
		}
		defer store.Close()

		ids, err := store.List()
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(tracesCmd)

	replayCmd.Flags().String("profile", "", "threshold profile to classify with")
}
