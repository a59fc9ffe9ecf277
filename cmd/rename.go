package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"image-browser/internal/catalog"
	"image-browser/internal/collection"
	"image-browser/internal/history"
	"image-browser/internal/logging"
	"image-browser/internal/rename"
	"image-browser/internal/startup"
)

var (
	renameRemove         []string
	renameReplace        []string
	renameAppend         string
	renameStripAppendage string
	renameTrimPrefix     int
	renameReorder        bool
	renameDryRun         bool
	renameYes            bool
)

var renameCmd = &cobra.Command{
	Use:   "rename [dir]",
	Short: "Batch-rename images with composable transforms",
	Long: `rename stages a batch of name transforms over every image in the
directory, shows the preview, and commits the renames to disk.

Transforms are applied in a fixed order: --remove, --replace,
--strip-appendage, --trim-prefix, --reorder-numbers, --append. Each one
runs over the output of the previous. Items whose name would not change
are left alone, and a failure on one file never stops the rest.

Examples:
  image-browser rename --remove IMG_ --append _tokyo
  image-browser rename --replace holiday=trip --dry-run
  image-browser rename --trim-prefix 4 --reorder-numbers ~/pics`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig()
		if err != nil {
			return err
		}
		dir := config.BrowseDir
		if len(args) == 1 {
			dir = args[0]
		}

		transforms, err := buildTransforms()
		if err != nil {
			return err
		}
		if len(transforms) == 0 {
			return fmt.Errorf("no transforms given; see --help")
		}

		ctx := context.Background()
		entries, err := catalog.Scan(ctx, dir, catalog.ScanOptions{
			Extensions: config.Extensions,
			Recursive:  config.Recursive,
		})
		if err != nil {
			return fmt.Errorf("scanning %s: %w", dir, err)
		}
		coll := collection.Build(entries)

		session := rename.Open(coll)
		for _, t := range transforms {
			logging.Debug("applying transform: %s", t)
			session.Apply(t)
		}

		printPreview(session)
		if session.ChangedCount() == 0 {
			fmt.Println("Nothing to rename.")
			return nil
		}
		if renameDryRun {
			fmt.Printf("Dry run: %d files would be renamed.\n", session.ChangedCount())
			return nil
		}
		if !renameYes && !confirmBatch(session.ChangedCount()) {
			fmt.Println("Aborted.")
			return nil
		}

		engine := rename.NewEngine(coll)
		engine.SetConfirmer(overwriteConfirmer())

		if config.HistoryEnabled {
			journal, err := history.Open(ctx, config.HistoryPath)
			if err != nil {
				logging.Warn("rename history unavailable: %v", err)
			} else {
				defer journal.Close()
				startup.LogHistoryInit(config.HistoryPath)
				engine.SetJournal(journal)
			}
		}

		summary, err := engine.Commit(ctx, session)
		if err != nil {
			return err
		}

		printOutcome(session)
		fmt.Printf("Done: %s.\n", summary)
		if summary.Failed > 0 {
			return fmt.Errorf("%d renames failed", summary.Failed)
		}
		return nil
	},
}

// buildTransforms converts the flag values into the fixed-order
// transform list.
func buildTransforms() ([]rename.Transform, error) {
	var transforms []rename.Transform
	for _, token := range renameRemove {
		if token == "" {
			return nil, fmt.Errorf("--remove needs a non-empty token")
		}
		transforms = append(transforms, rename.RemoveSubstring(token))
	}
	for _, pair := range renameReplace {
		from, to, ok := strings.Cut(pair, "=")
		if !ok || from == "" {
			return nil, fmt.Errorf("--replace needs the form old=new, got %q", pair)
		}
		transforms = append(transforms, rename.ReplaceSubstring(from, to))
	}
	if renameStripAppendage != "" {
		transforms = append(transforms, rename.RemoveAppendage(renameStripAppendage))
	}
	if renameTrimPrefix < 0 {
		return nil, fmt.Errorf("--trim-prefix must be non-negative")
	}
	if renameTrimPrefix > 0 {
		transforms = append(transforms, rename.TrimPrefix(renameTrimPrefix))
	}
	if renameReorder {
		transforms = append(transforms, rename.ReorderNumbers())
	}
	if renameAppend != "" {
		transforms = append(transforms, rename.AddAppendage(renameAppend))
	}
	return transforms, nil
}

func printPreview(session *rename.Session) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFROM\tTO")
	for _, it := range session.Items() {
		if !it.Changed() {
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", it.ID, it.OriginalName, it.CandidateName)
	}
	w.Flush()
}

func printOutcome(session *rename.Session) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, it := range session.Items() {
		if it.Status == rename.StatusPending && it.Reason == "" {
			continue
		}
		line := fmt.Sprintf("%d\t%s\t%s", it.ID, it.OriginalName, it.Status)
		if it.Reason != "" {
			line += "\t" + it.Reason
		}
		fmt.Fprintln(w, line)
	}
	w.Flush()
}

func confirmBatch(count int) bool {
	fmt.Printf("Rename %d files? [y/N] ", count)
	return readYes()
}

// overwriteConfirmer prompts on stdin for each conflicting target. With
// --yes every overwrite is accepted without prompting.
func overwriteConfirmer() rename.Confirmer {
	if renameYes {
		return rename.ConfirmerFunc(func(string) bool { return true })
	}
	return rename.ConfirmerFunc(func(target string) bool {
		fmt.Printf("Target %s exists. Overwrite? [y/N] ", target)
		return readYes()
	})
}

func readYes() bool {
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	renameCmd.Flags().StringArrayVar(&renameRemove, "remove", nil, "remove every occurrence of a substring (repeatable)")
	renameCmd.Flags().StringArrayVar(&renameReplace, "replace", nil, "replace old=new on every occurrence (repeatable)")
	renameCmd.Flags().StringVar(&renameAppend, "append", "", "append a token to the base name")
	renameCmd.Flags().StringVar(&renameStripAppendage, "strip-appendage", "", "remove a trailing token from the base name")
	renameCmd.Flags().IntVar(&renameTrimPrefix, "trim-prefix", 0, "remove the first N characters of the base name")
	renameCmd.Flags().BoolVar(&renameReorder, "reorder-numbers", false, "sort numeric runs in the base name ascending")
	renameCmd.Flags().BoolVarP(&renameDryRun, "dry-run", "n", false, "show the preview without renaming anything")
	renameCmd.Flags().BoolVarP(&renameYes, "yes", "y", false, "skip confirmation prompts and accept overwrites")
	rootCmd.AddCommand(renameCmd)
}
