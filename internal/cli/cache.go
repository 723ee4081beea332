package cli

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowgrid/pkg/cache"
)

// cacheCommand groups the subcommands that inspect the local file cache.
// None of them touch a Redis cache configured with --redis-url.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local layout cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove all cached layouts",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return clearCache() },
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
				return nil
			},
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Show the number of cached layouts",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return cacheStats() },
		},
	)
	return cmd
}

// existingCache opens the file cache without creating its directory. fc is
// nil when nothing was ever cached.
func existingCache() (dir string, fc *cache.FileCache, err error) {
	if dir, err = cacheDir(); err != nil {
		return "", nil, fmt.Errorf("get cache dir: %w", err)
	}
	if _, err = os.Stat(dir); stderrors.Is(err, fs.ErrNotExist) {
		return dir, nil, nil
	}
	fc, err = cache.NewFileCache(dir)
	return dir, fc, err
}

func clearCache() error {
	dir, fc, err := existingCache()
	if err != nil {
		return err
	}
	if fc == nil {
		printInfo("Cache is empty")
		return nil
	}
	n, err := fc.Clear()
	if err != nil {
		return err
	}
	printSuccess("Cleared %d cached entries", n)
	printDetail("Directory: %s", dir)
	return nil
}

func cacheStats() error {
	dir, fc, err := existingCache()
	if err != nil {
		return err
	}
	n := 0
	if fc != nil {
		if n, err = fc.Entries(); err != nil {
			return err
		}
	}
	printKeyValue("Directory", dir)
	printKeyValue("Entries", strconv.Itoa(n))
	if n > 0 {
		printNextStep("Remove them with", appName+" cache clear")
	}
	return nil
}
