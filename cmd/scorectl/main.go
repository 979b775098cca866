// cmd/scorectl/main.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"jobezie-workers/internal/scoring"
	"jobezie-workers/internal/scoring/langpack"

	"github.com/spf13/cobra"
)

const app = "scorectl"

// Set at build time with -ldflags "-X main.version=...".
var version = "unknown"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	langPath string
	compact  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           app,
		Short:         "scorectl runs the career coaching scorers locally and prints JSON",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.langPath, "lang", "", "language pack YAML (default is built-in English)")
	root.PersistentFlags().BoolVar(&opts.compact, "compact", false, "print single-line JSON")

	root.AddCommand(
		newATSCmd(opts),
		newMessageCmd(opts),
		newPriorityCmd(opts),
		newReadinessCmd(opts),
		newRegistryCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", app, version)
		},
	}
}

func (o *rootOptions) language() (scoring.LanguagePack, error) {
	return langpack.Load(o.langPath)
}

func (o *rootOptions) print(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	if !o.compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// readText returns the file contents for a path argument, stdin for "-",
// or the fallback flag value when no argument was given.
func readText(cmd *cobra.Command, args []string, fallback string) (string, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	if args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		return string(b), err
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(b), nil
}
