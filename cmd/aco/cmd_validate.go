package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pthm-cable/aco/config"
	"github.com/pthm-cable/aco/layout"
)

// validation is the result of checking one file.
type validation struct {
	Path      string `json:"path"`
	Kind      string `json:"kind"`
	Valid     bool   `json:"valid"`
	Error     string `json:"error,omitempty"`
	Element   string `json:"element,omitempty"`
	Obstacles int    `json:"obstacles,omitempty"`
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <layout-file>...",
		Short: "Check layout files for placement errors",
		Long: `Check layout files for placement errors.

Every element is replayed through the layout builder, so a file fails
exactly where interactive placement would. With --config-file the given
config is checked as well.

Examples:
  aco validate maze.json
  aco validate a.yaml b.json --json
  aco validate --config-file tuned.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			cfgPath, _ := cmd.Flags().GetString("config-file")
			if len(args) == 0 && cfgPath == "" {
				return errors.New("nothing to validate")
			}

			var results []validation
			if cfgPath != "" {
				results = append(results, validateConfig(cfgPath))
			}
			for _, path := range args {
				results = append(results, validateLayout(path))
			}

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(results); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					fmt.Fprintln(cmd.OutOrStdout(), renderValidation(r))
				}
			}

			for _, r := range results {
				if !r.Valid {
					return errors.New("validation failed")
				}
			}
			return nil
		},
	}
	cmd.Flags().String("config-file", "", "Also validate this config file")
	return cmd
}

func validateLayout(path string) validation {
	r := validation{Path: path, Kind: "layout"}
	l, err := layout.Load(path)
	if err != nil {
		r.Error = err.Error()
		var pe *layout.PlacementError
		if errors.As(err, &pe) {
			r.Element = string(pe.Element)
		}
		return r
	}
	r.Valid = true
	r.Obstacles = len(l.Obstacles)
	return r
}

func validateConfig(path string) validation {
	r := validation{Path: path, Kind: "config"}
	if _, err := config.Load(path); err != nil {
		r.Error = err.Error()
		return r
	}
	r.Valid = true
	return r
}
