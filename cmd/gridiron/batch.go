package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/use-agent/gridiron/config"
	"github.com/use-agent/gridiron/models"
)

func newBatchCmd(cfg *config.Config) *cobra.Command {
	var (
		browser bool
		output  string
	)
	cmd := &cobra.Command{
		Use:   "batch MANIFEST",
		Short: "Run every parse listed in a YAML manifest",
		Long: `The manifest lists parse requests under "jobs":

  jobs:
    - page: draft
      params: {year: "2024"}
    - page: hof
      max_age: 3600000

Jobs run one after another at the configured fetch pace and the results
are written as a JSON array in manifest order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadManifest(args[0])
			if err != nil {
				return err
			}
			st, err := newStack(cfg, browser)
			if err != nil {
				return err
			}
			defer st.Close()

			results := make([]*models.ParseResponse, len(req.Jobs))
			failed := 0
			for i, job := range req.Jobs {
				resp, err := st.pipeline.Run(cmd.Context(), job)
				if err != nil {
					failed++
				}
				results[i] = resp
				slog.Info("batch job done", "index", i, "page", job.Page, "success", resp.Success)
			}
			if err := writeJSON(cmd.OutOrStdout(), output, results); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d jobs failed", failed, len(req.Jobs))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&browser, "browser", false, "launch a headless browser for fetching")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to this file instead of stdout")
	return cmd
}

func loadManifest(path string) (*models.BatchRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var req models.BatchRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if len(req.Jobs) == 0 {
		return nil, fmt.Errorf("manifest %s has no jobs", path)
	}
	for i, j := range req.Jobs {
		if j.Page == "" {
			return nil, fmt.Errorf("manifest %s: job %d has no page", path, i)
		}
	}
	return &req, nil
}
