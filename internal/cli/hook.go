// Package cli implements the touchwave command tree.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/frudas24/touchwave/gesture"
	"github.com/frudas24/touchwave/internal/config"
	"github.com/frudas24/touchwave/internal/input"
	"github.com/frudas24/touchwave/internal/profile"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Recognize gestures from local mouse input",
	Long:  "Captures system pointer events and prints the gestures they form. Useful for trying thresholds without a touch client.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
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

		log := logrus.StandardLogger()
		log.WithField("profile", profileName).Info("hook starting, press ctrl+c to stop")

		rec := gesture.New(gcfg)
		defer rec.Teardown()
		for _, kind := range gesture.Kinds() {
			rec.Subscribe(kind, func(ev gesture.Event) {
				printGesture(log, ev)
			})
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		return input.NewBridge(rec, log).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(hookCmd)
	hookCmd.Flags().String("profile", "", "threshold profile to classify with")
}

// printGesture logs one classified gesture with its payload fields.
func printGesture(log logrus.FieldLogger, ev gesture.Event) {
	switch g := ev.(type) {
	case gesture.Swipe:
		log.WithFields(logrus.Fields{
			"direction": g.Direction,
			"distance":  fmt.Sprintf("%.0f", g.Distance),
			"velocity":  fmt.Sprintf("%.2f", g.Velocity),
		}).Info("swipe")
	case gesture.Pinch:
		log.WithField("scale", fmt.Sprintf("%.2f", g.Scale)).Info("pinch")
	case gesture.Tap:
		log.WithFields(logrus.Fields{"x": g.Center.X, "y": g.Center.Y}).Info("tap")
	case gesture.DoubleTap:
		log.WithFields(logrus.Fields{"x": g.Center.X, "y": g.Center.Y}).Info("double tap")
	case gesture.LongPress:
		log.WithFields(logrus.Fields{"x": g.Center.X, "y": g.Center.Y}).Info("long press")
	}
}
