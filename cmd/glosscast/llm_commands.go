package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"glosscast/internal/llm"
)

func newLLMCommand(cmdCtx *commandContext) *cobra.Command {
	llmCmd := &cobra.Command{
		Use:   "llm",
		Short: "Word-selection model utilities",
	}

	llmCmd.AddCommand(newLLMHealthCommand(cmdCtx))

	return llmCmd
}

func newLLMHealthCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check connectivity to the configured model endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.AnnotationEnabled() {
				return errors.New("no llm credential configured (set llm.api_key or GLOSSCAST_LLM_API_KEY)")
			}

			client := llm.NewClient(llm.Config{
				APIKey:         cfg.LLM.APIKey,
				BaseURL:        cfg.LLM.BaseURL,
				Model:          cfg.LLM.Model,
				Referer:        cfg.LLM.Referer,
				Title:          cfg.LLM.Title,
				TimeoutSeconds: cfg.LLM.TimeoutSeconds,
			})
			if err := client.HealthCheck(cmd.Context()); err != nil {
				return fmt.Errorf("llm health check failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Model %s reachable at %s\n", cfg.LLM.Model, cfg.LLM.BaseURL)
			return nil
		},
	}
}
