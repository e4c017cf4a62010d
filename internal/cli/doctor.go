package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lscrates/cargo-ls-crates/internal/config"
	"github.com/lscrates/cargo-ls-crates/internal/installroot"
	"github.com/lscrates/cargo-ls-crates/internal/inventory"
	"github.com/lscrates/cargo-ls-crates/internal/registry"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose install root discovery and metadata scanning",
	Long: `Show every install root candidate and whether it exists, the state of each
root's bin directory, registry scan statistics, and whether the config file
matches its schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		mode, err := parserMode()
		if err != nil {
			return err
		}

		candidates := installroot.Resolve(installroot.EnvFromOS(rootFlag))
		roots := checkRoots(out, candidates)
		if firstRoot && len(roots) > 0 {
			roots = roots[:1]
		}

		inv := inventory.Collect(roots, inventoryOptions(mode))
		checkBinaries(out, inv)
		checkRegistry(out, inv)
		checkConfig(out, config.FilePath())
		return nil
	},
}

func checkRoots(out io.Writer, candidates []installroot.Candidate) []installroot.Root {
	fmt.Fprintln(out, "Install roots:")
	if len(candidates) == 0 {
		fmt.Fprintln(out, "  [FAIL] no candidate configured (set CARGO_HOME or HOME)")
		return nil
	}
	var roots []installroot.Root
	for _, c := range candidates {
		if !c.Exists() {
			fmt.Fprintf(out, "  [MISS] %-18s %s: %v\n", c.Source, c.Path, c.Err)
			continue
		}
		fmt.Fprintf(out, "  [ OK ] %-18s %s\n", c.Source, c.Path)
		roots = append(roots, c.Root)
	}
	if len(roots) == 0 {
		fmt.Fprintf(out, "  [FAIL] %v\n", installroot.ErrRootNotFound)
	}
	return roots
}

func checkBinaries(out io.Writer, inv *inventory.Inventory) {
	fmt.Fprintln(out, "Binaries:")
	for _, r := range inv.Roots {
		switch {
		case r.ListErr != nil:
			fmt.Fprintf(out, "  [FAIL] %v\n", r.ListErr)
		case !r.Listing.Exists:
			fmt.Fprintf(out, "  [WARN] %s does not exist\n", r.Listing.Dir)
		case r.Listing.Empty():
			fmt.Fprintf(out, "  [WARN] %s is empty\n", r.Listing.Dir)
		default:
			fmt.Fprintf(out, "  [ OK ] %s: %d entries\n", r.Listing.Dir, len(r.Listing.Entries))
		}
	}
}

func checkRegistry(out io.Writer, inv *inventory.Inventory) {
	fmt.Fprintln(out, "Registry cache:")
	for _, r := range inv.Roots {
		src := filepath.Join(r.Root.Path, registry.SourceDir)
		stats := fmt.Sprintf("%d manifests, %d records, %d skipped", r.Stats.Candidates, r.Stats.Records, r.Stats.Skipped)
		switch {
		case errors.Is(r.ScanErr, registry.ErrSourceCacheMissing):
			fmt.Fprintf(out, "  [WARN] %s cannot be read\n", src)
		case r.ScanErr != nil:
			fmt.Fprintf(out, "  [WARN] %s: %s\n", src, stats)
		default:
			fmt.Fprintf(out, "  [ OK ] %s: %s\n", src, stats)
		}
	}
	if len(inv.Roots) > 0 {
		fmt.Fprintf(out, "  [INFO] %d names indexed across all roots\n", inv.Index.Len())
	}
}

func checkConfig(out io.Writer, path string) {
	fmt.Fprintln(out, "Config:")
	result, err := config.ValidateFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(out, "  [INFO] %s not present, using defaults\n", path)
		return
	}
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] %v\n", err)
		return
	}
	if result.Valid {
		fmt.Fprintf(out, "  [ OK ] %s is valid\n", path)
		return
	}
	fmt.Fprintf(out, "  [FAIL] %s has %d issue(s):\n", path, len(result.Issues))
	for _, issue := range result.Issues {
		loc := issue.Path
		if loc == "" {
			loc = "(root)"
		}
		fmt.Fprintf(out, "    %s: %s\n", loc, issue.Message)
	}
}
