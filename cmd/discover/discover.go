// Package discover implements the patch file discovery subcommand.
package discover

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tlarcher/geolife-go/internal/conf"
	"github.com/tlarcher/geolife-go/internal/discover"
)

// Command creates the discover command for listing patch files under a
// directory tree.
func Command(settings *conf.Settings) *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "discover [root]",
		Short: "List patch files under a directory tree",
		Long: `Recursively list files under root whose extension and filename suffix
match the configured patterns. Results are sorted by path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiscover(settings, args[0], long)
		},
	}

	cmd.Flags().StringSliceVar(&settings.Discover.Extensions, "ext", settings.Discover.Extensions, "File extensions to match, without leading dot")
	cmd.Flags().StringVar(&settings.Discover.Suffix, "suffix", settings.Discover.Suffix, "Filename suffix pattern (regular expression)")
	cmd.Flags().BoolVarP(&long, "long", "l", false, "Show file size and modification time")

	return cmd
}

func runDiscover(settings *conf.Settings, root string, long bool) error {
	infos, err := discover.FindFileInfos(root, settings.Discover.Extensions, settings.Discover.Suffix)
	if err != nil {
		return err
	}

	// traversal order is not guaranteed, sort for stable output
	sort.Slice(infos, func(i, j int) bool { return infos[i].Path < infos[j].Path })

	for _, info := range infos {
		if long {
			fmt.Printf("%10d  %s  %s\n", info.Size, info.ModTime.Format("2006-01-02 15:04:05"), info.Path)
		} else {
			fmt.Println(info.Path)
		}
	}
	fmt.Printf("%d files found\n", len(infos))
	return nil
}
