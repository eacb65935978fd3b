package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/use-agent/gridiron/config"
	"github.com/use-agent/gridiron/models"
)

func newParseCmd(cfg *config.Config) *cobra.Command {
	var (
		params    []string
		file      string
		url       string
		fetchMode string
		browser   bool
		stealth   bool
		output    string
	)
	cmd := &cobra.Command{
		Use:   "parse PAGE",
		Short: "Fetch and parse one page",
		Example: `  gridiron parse draft -p year=2024
  gridiron parse player -p letter=J -p player_id=JackLa00 --browser
  gridiron parse hof --file hof.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseParams(params)
			if err != nil {
				return err
			}
			req := models.ParseRequest{Page: args[0], Params: p, URL: url, FetchMode: fetchMode, Stealth: stealth}
			if file != "" {
				if req.HTML, err = readHTML(file); err != nil {
					return err
				}
			}

			st, err := newStack(cfg, browser && file == "")
			if err != nil {
				return err
			}
			defer st.Close()

			resp, runErr := st.pipeline.Run(cmd.Context(), req)
			if err := writeJSON(cmd.OutOrStdout(), output, resp); err != nil {
				return err
			}
			return runErr
		},
	}
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "page parameter as key=value (repeatable)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "parse a saved HTML file (\"-\" for stdin) instead of fetching")
	cmd.Flags().StringVar(&url, "url", "", "override the page URL")
	cmd.Flags().StringVar(&fetchMode, "fetch-mode", "auto", "auto, http or browser")
	cmd.Flags().BoolVar(&browser, "browser", false, "launch a headless browser for fetching")
	cmd.Flags().BoolVar(&stealth, "stealth", false, "use stealth evasions in the browser")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to this file instead of stdout")
	return cmd
}

// parseParams turns ["year=2024", "team=kan"] into a map.
func parseParams(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, kv := range pairs {
		k, v, ok := strings.Cut(kv, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("param %q: want key=value", kv)
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}

func readHTML(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

func writeJSON(stdout io.Writer, path string, v any) error {
	w := stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
