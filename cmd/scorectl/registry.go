package main

import (
	"fmt"
	"text/tabwriter"

	"jobezie-workers/internal/common/validation"
	"jobezie-workers/pkg/registry"

	"github.com/spf13/cobra"
)

const defaultRegistryPath = "configs/activity-registry.json"

func newRegistryCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect the activity registry the workers validate input against",
	}
	cmd.PersistentFlags().StringVar(&path, "path", defaultRegistryPath, "path to registry file")

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check required fields and compile every input schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return err
			}
			if err := validateRegistry(reg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d activities.\n", len(reg.Activities))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered task types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TASK TYPE\tTIMEOUT\tRETRIES\tERROR CODES")
			for _, taskType := range reg.TaskTypes() {
				a, _ := reg.Find(taskType)
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", a.TaskType, a.Timeout, a.Retries, len(a.ErrorCodes))
			}
			return tw.Flush()
		},
	})
	return cmd
}

// validateRegistry checks the fields the worker manager relies on and that
// every input schema compiles.
func validateRegistry(reg *registry.ActivityRegistry) error {
	if len(reg.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	ids := make(map[string]bool)
	for _, a := range reg.Activities {
		if a.ID == "" {
			return fmt.Errorf("activity %s missing required field: ID", a.TaskType)
		}
		if ids[a.ID] {
			return fmt.Errorf("duplicate activity ID: %s", a.ID)
		}
		ids[a.ID] = true

		if a.DisplayName == "" {
			return fmt.Errorf("activity %s missing required field: DisplayName", a.ID)
		}
		if a.Category == "" {
			return fmt.Errorf("activity %s missing required field: Category", a.ID)
		}
		if len(a.InputSchema) == 0 {
			return fmt.Errorf("activity %s has no inputSchema", a.ID)
		}
	}

	if _, err := validation.NewValidator(reg.InputSchemas()); err != nil {
		return fmt.Errorf("input schemas: %w", err)
	}
	return nil
}
