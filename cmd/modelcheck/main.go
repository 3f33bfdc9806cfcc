/*
Package main is the entry point for the modelcheck CLI.

modelcheck validates an emotion model artifact offline and optionally
runs ad-hoc classifications against it, so a new training export can be
checked before it is rolled out to the server.

Usage:
  modelcheck [command]

Available Commands:
  verify      Validate a model artifact file
  classify    Classify sample text with an artifact

Examples:
  # Validate an exported artifact
  modelcheck verify --artifact model.json

  # Try a sample comment against it
  modelcheck classify --artifact model.json "really enjoying the new dashboard"
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/luckyvista/feedbackpulse/internal/emotion"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "modelcheck",
		Short: "Validate and exercise emotion model artifacts",
	}

	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newClassifyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVerifyCmd() *cobra.Command {
	var artifactPath string

	cmd := &cobra.Command{
		Use:     "verify",
		Short:   "Validate a model artifact file",
		Example: `  modelcheck verify --artifact model.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := emotion.LoadArtifact(artifactPath)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Artifact: %s\n", artifactPath)
			fmt.Printf("✓ Version: %s\n", a.Version)
			fmt.Printf("✓ Vocabulary: %d tokens\n", len(a.Vectorizer.Vocabulary))
			fmt.Printf("✓ Classes: %d\n", len(a.Classifier.Classes))
			return nil
		},
	}

	cmd.Flags().StringVar(&artifactPath, "artifact", "model.json", "path to the model artifact")
	return cmd
}

func newClassifyCmd() *cobra.Command {
	var (
		artifactPath string
		threshold    float64
	)

	cmd := &cobra.Command{
		Use:     "classify [text]",
		Short:   "Classify sample text with an artifact",
		Args:    cobra.MinimumNArgs(1),
		Example: `  modelcheck classify --artifact model.json "really enjoying the new dashboard"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := emotion.NewService(threshold)
			if err := svc.Reload(artifactPath); err != nil {
				return err
			}

			for _, text := range args {
				label, confidence := svc.Classify(text)
				fmt.Printf("%-14s %.4f  %q\n", label, confidence, text)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&artifactPath, "artifact", "model.json", "path to the model artifact")
	cmd.Flags().Float64Var(&threshold, "threshold", emotion.DefaultConfidenceThreshold, "confidence threshold for the Unclassified fallback")
	return cmd
}
