package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"

	"github.com/shaharia-lab/deskhooks/internal/build"
)

const releaseSlug = "shaharia-lab/deskhooks"

// NewUpdateCmd returns the "update" subcommand that self-updates the binary.
func NewUpdateCmd() *cobra.Command {
	var yes, check bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replace the deskhooks binary with the latest GitHub release",
		Long: `Look up the latest deskhooks release and replace the running binary with it.
A symlinked binary is resolved first, so credentials.json next to the real
file stays in place. Hooks pick up the new binary on their next invocation;
restart a running "tasks --watch" process yourself.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUpdate(cmd, yes, check)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Install without asking")
	cmd.Flags().BoolVar(&check, "check", false, "Only report whether a newer release exists")
	return cmd
}

// currentVersion returns the running release version, or an error for
// untagged builds that cannot be compared against releases.
func currentVersion() (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(build.Version, "v"))
	if err != nil {
		return nil, fmt.Errorf("cannot update a dev build (%s); install a tagged release first", build.Version)
	}
	return v, nil
}

// confirmed reads one answer line and accepts y or yes in any case.
func confirmed(r io.Reader) bool {
	line, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// updateTarget is the file to replace: the executable with symlinks resolved.
func updateTarget() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("finding current executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe, nil
}

func runUpdate(cmd *cobra.Command, skipConfirm, checkOnly bool) error {
	current, err := currentVersion()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{})
	if err != nil {
		return fmt.Errorf("creating updater: %w", err)
	}

	release, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(releaseSlug))
	if err != nil {
		return fmt.Errorf("looking up releases of %s: %w", releaseSlug, err)
	}

	out := cmd.OutOrStdout()
	if !found || !release.GreaterThan(current.String()) {
		fmt.Fprintf(out, "deskhooks %s is the latest release\n", current)
		return nil
	}
	fmt.Fprintf(out, "deskhooks %s -> %s\n", current, release.Version())
	if checkOnly {
		return nil
	}

	target, err := updateTarget()
	if err != nil {
		return err
	}

	if !skipConfirm {
		fmt.Fprintf(out, "Replace %s? [y/N] ", target)
		if !confirmed(cmd.InOrStdin()) {
			fmt.Fprintln(out, "Nothing changed.")
			return nil
		}
	}

	if err := updater.UpdateTo(ctx, release, target); err != nil {
		return fmt.Errorf("installing %s: %w", release.Version(), err)
	}

	fmt.Fprintf(out, "Installed deskhooks %s at %s\n", release.Version(), target)
	return nil
}
