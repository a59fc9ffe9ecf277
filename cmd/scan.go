package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"image-browser/internal/catalog"
	"image-browser/internal/collection"
	"image-browser/internal/imagetypes"
	"image-browser/internal/startup"
)

var scanLong bool

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Scan a directory and list its images in collection order",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		dir := config.BrowseDir
		if len(args) == 1 {
			dir = args[0]
		}

		startup.LogScanStarted(dir, config.Recursive)
		start := time.Now()
		entries, err := catalog.Scan(context.Background(), dir, catalog.ScanOptions{
			Extensions: config.Extensions,
			Recursive:  config.Recursive,
		})
		if err != nil {
			return fmt.Errorf("scanning %s: %w", dir, err)
		}
		startup.LogScanComplete(len(entries), time.Since(start))

		coll := collection.Build(entries)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		if scanLong {
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tSIZE\tMODIFIED\tPATH")
		} else {
			fmt.Fprintln(w, "ID\tNAME")
		}
		for _, id := range coll.Ids() {
			entry, err := coll.Get(id)
			if err != nil {
				continue
			}
			if scanLong {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%s\n",
					id, entry.Name, imagetypes.GetMimeType(entry.Ext),
					entry.Size, entry.ModTime.Format(time.DateTime), entry.Path)
			} else {
				fmt.Fprintf(w, "%d\t%s\n", id, entry.Name)
			}
		}
		return w.Flush()
	},
}

func init() {
	scanCmd.Flags().BoolVarP(&scanLong, "long", "l", false, "include size, modification time, and full path")
	rootCmd.AddCommand(scanCmd)
}
