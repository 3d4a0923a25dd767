package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yuanying/epubreader/internal/chapter"
	"github.com/yuanying/epubreader/internal/epub"
	"github.com/yuanying/epubreader/internal/reader"
	"github.com/yuanying/epubreader/internal/thumbnail"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <book.epub>",
		Short: "Show book metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := readCLIOptions(cmd)
			if err != nil {
				return err
			}
			book, err := opts.openBook(args[0])
			if err != nil {
				return err
			}
			defer book.Close()

			fingerprint, err := book.Fingerprint()
			if err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), book, fingerprint)
			return nil
		},
	}
}

func printInfo(w io.Writer, book *epub.Book, fingerprint string) {
	md := book.Metadata
	fmt.Fprintf(w, "Title:       %s\n", md.DisplayTitle())
	fmt.Fprintf(w, "Creator:     %s\n", md.DisplayCreator())
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"Identifier", md.Identifier},
		{"Language", md.Language},
		{"Publisher", md.Publisher},
		{"Rights", md.Rights},
	} {
		if f.value != nil {
			fmt.Fprintf(w, "%-12s %s\n", f.name+":", *f.value)
		}
	}
	fmt.Fprintf(w, "Package:     %s\n", book.OPFPath)
	fmt.Fprintf(w, "Manifest:    %d items\n", len(book.Manifest.Items))
	fmt.Fprintf(w, "Spine:       %d items\n", len(book.Spine.Items))
	fmt.Fprintf(w, "Contents:    %d entries\n", len(book.TableOfContents.Items))
	if cover, ok := book.Cover(); ok {
		fmt.Fprintf(w, "Cover:       %s (%s)\n", cover.Item.Href, cover.DetectionMethod)
	}
	fmt.Fprintf(w, "Fingerprint: %s\n", fingerprint)
}

func newTOCCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toc <book.epub>",
		Short: "List the table of contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := readCLIOptions(cmd)
			if err != nil {
				return err
			}
			book, err := opts.openBook(args[0])
			if err != nil {
				return err
			}
			defer book.Close()

			w := cmd.OutOrStdout()
			for i, item := range book.TableOfContents.Items {
				target := item.Path
				if item.HasAnchor() {
					target += "#" + item.Anchor
				}
				fmt.Fprintf(w, "%4d  %s  [%s]\n", i+1, item.Label, target)
			}
			return nil
		},
	}
}

func newReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <book.epub>",
		Short: "Print chapters as plain text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := readCLIOptions(cmd)
			if err != nil {
				return err
			}
			start, _ := cmd.Flags().GetInt("chapter")
			count, _ := cmd.Flags().GetInt("count")
			if start < 1 {
				return fmt.Errorf("--chapter must be >= 1: %d", start)
			}
			if count < 0 {
				return fmt.Errorf("--count must be >= 0: %d", count)
			}

			book, err := opts.openBook(args[0])
			if err != nil {
				return err
			}
			defer book.Close()

			session, err := reader.New(book,
				reader.WithLogger(opts.Logger),
				reader.WithCacheSize(opts.CacheSize),
				reader.WithMode(opts.Mode),
			)
			if err != nil {
				return err
			}
			return readChapters(cmd.OutOrStdout(), session, start, count)
		},
	}
	cmd.Flags().Int("chapter", 1, "Table-of-contents entry to start at (1-based)")
	cmd.Flags().Int("count", 1, "Number of entries to print (0 = through the end)")
	return cmd
}

// readChapters prints count entries starting at the 1-based entry start.
func readChapters(w io.Writer, session *reader.Session, start, count int) error {
	if _, total := session.Position(); start > total {
		return fmt.Errorf("--chapter %d out of range: book has %d entries", start, total)
	}
	for i := 1; i < start; i++ {
		if err := session.MoveToNextChapter(); err != nil {
			return err
		}
	}

	for printed := 0; count == 0 || printed < count; printed++ {
		printChapter(w, session.CurrentChapter())

		before, _ := session.Position()
		if err := session.MoveToNextChapter(); err != nil {
			return err
		}
		if after, _ := session.Position(); after == before {
			break
		}
	}
	return nil
}

func printChapter(w io.Writer, c *chapter.Chapter) {
	node, ok := c.Body()
	if !ok {
		node = c.Root()
	}
	fmt.Fprintf(w, "== %s ==\n\n%s\n\n", c.Label, strings.TrimSpace(node.Text()))
}

func newCoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cover <book.epub>",
		Short: "Write a JPEG thumbnail of the cover image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := readCLIOptions(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			cfg := opts.Config.Cover
			if flags.Changed("width") {
				cfg.Width, _ = flags.GetInt("width")
			}
			if flags.Changed("height") {
				cfg.Height, _ = flags.GetInt("height")
			}
			if flags.Changed("quality") {
				cfg.Quality, _ = flags.GetInt("quality")
				if cfg.Quality < 1 || cfg.Quality > 100 {
					return fmt.Errorf("--quality must be 1-100: %d", cfg.Quality)
				}
			}
			output, _ := flags.GetString("output")
			if output == "" {
				output = defaultCoverPath(args[0])
			}

			book, err := opts.openBook(args[0])
			if err != nil {
				return err
			}
			defer book.Close()

			cover, ok := book.Cover()
			if !ok {
				return fmt.Errorf("no cover image found in %s", args[0])
			}
			data, err := book.ReadResource(cover.Item.Href)
			if err != nil {
				return err
			}

			thumb, err := thumbnail.NewRenderer(cfg.Width, cfg.Height, cfg.Quality).Render(cover.Item.MediaType, data)
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, thumb.Data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			opts.Logger.Info("cover written",
				"output", output,
				"source", cover.Item.Href,
				"method", cover.DetectionMethod,
				"width", thumb.Width,
				"height", thumb.Height,
			)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output file path (default: input with .cover.jpg suffix)")
	cmd.Flags().Int("width", 0, "Maximum thumbnail width")
	cmd.Flags().Int("height", 0, "Maximum thumbnail height")
	cmd.Flags().Int("quality", 0, "JPEG quality (1-100)")
	return cmd
}

func defaultCoverPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".cover.jpg"
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Create a default configuration file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, loader, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				if err := loader.Init(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", loader.ConfigPath())
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				opts, err := readCLIOptions(cmd)
				if err != nil {
					return err
				}
				data, err := yaml.Marshal(opts.Config)
				if err != nil {
					return fmt.Errorf("failed to marshal config: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				_, loader, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), loader.ConfigPath())
				return nil
			},
		},
	)
	return cmd
}
