package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lscrates/cargo-ls-crates/internal/inventory"
	"github.com/lscrates/cargo-ls-crates/internal/registry"
)

// ErrNotInIndex is returned by info when no cached manifest matches the name.
var ErrNotInIndex = errors.New("not found in the registry source cache")

var infoJSON bool

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show cached metadata for a package or binary name",
	Long: `Show the record indexed under a package or binary name, every version of it
found in the registry source cache, and where it is installed.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

type infoResult struct {
	registry.Record
	Versions  []string `json:"cached_versions"`
	Installed []string `json:"installed"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	name := args[0]

	mode, err := parserMode()
	if err != nil {
		return err
	}
	roots, err := locateRoots()
	if err != nil {
		return err
	}

	inv := inventory.Collect(roots, inventoryOptions(mode))
	rec, ok := inv.Index.Lookup(name)
	if !ok {
		return fmt.Errorf("%s: %w", name, ErrNotInIndex)
	}

	res := infoResult{Record: rec, Versions: inv.Index.Versions(name), Installed: []string{}}
	for _, b := range inv.Binaries {
		if b.Key == name {
			res.Installed = append(res.Installed, b.Path)
		}
	}

	out := cmd.OutOrStdout()
	if infoJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling info: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "Name:        %s\n", rec.Name)
	if rec.AltName != "" {
		fmt.Fprintf(out, "Binary:      %s\n", rec.AltName)
	}
	fmt.Fprintf(out, "Version:     %s\n", rec.Version)
	fmt.Fprintf(out, "Description: %s\n", rec.Description)
	fmt.Fprintf(out, "Manifest:    %s\n", rec.ManifestPath)
	fmt.Fprintf(out, "Cached:      %s\n", strings.Join(res.Versions, ", "))
	if len(res.Installed) == 0 {
		fmt.Fprintln(out, "Installed:   no")
	} else {
		fmt.Fprintf(out, "Installed:   %s\n", strings.Join(res.Installed, ", "))
	}
	return nil
}
