package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/jsphweid/ireal/file"
	"github.com/jsphweid/ireal/song"
	"github.com/jsphweid/ireal/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// extensions of files that may hold collection URLs
var chartExts = []string{".url", ".txt", ".html"}

var maxFiles int

func init() {
	reportCmd.Flags().IntVarP(&maxFiles, "max", "n", 0, "read at most this many files (0 reads all)")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <dir>",
	Short: "Reports on every collection in a directory",
	Long:  `Decodes every collection found under a directory and prints counts of songs, bars, chords and styles.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := analyze(cmd.Context(), newDecoder(), args[0], maxFiles)
		if err != nil {
			return err
		}
		r.write(cmd.OutOrStdout())
		return nil
	},
}

type collectionsReport struct {
	numFiles       int
	numCollections int
	numSongs       int
	numFailures    int
	barsPerSong    []int
	chordsPerSong  []int
	styles         map[string]int
	qualities      map[string]int
}

func analyze(ctx context.Context, dec *song.Decoder, root string, maxNum int) (collectionsReport, error) {
	report := collectionsReport{
		styles:    make(map[string]int),
		qualities: make(map[string]int),
	}
	paths, err := gatherPaths(root, maxNum)
	if err != nil {
		return report, err
	}
	for _, path := range paths {
		urls, err := file.ReadURLs(path)
		if err != nil {
			return report, err
		}
		report.numFiles++
		for _, url := range urls {
			c, err := dec.DecodeCollection(ctx, url)
			if err != nil {
				logger.Warn("skipping collection", zap.String("path", path), zap.Error(err))
				continue
			}
			report.numCollections++
			report.numSongs += len(c.Songs)
			report.numFailures += len(c.Failures)
			for _, s := range c.Songs {
				chords := s.Music.Chords()
				report.barsPerSong = append(report.barsPerSong, len(s.Music.Bars))
				report.chordsPerSong = append(report.chordsPerSong, len(chords))
				report.styles[s.Style]++
				for _, ch := range chords {
					if !ch.NC {
						report.qualities[ch.Flavor.Quality.String()]++
					}
				}
			}
		}
	}
	return report, nil
}

func gatherPaths(root string, maxNum int) ([]string, error) {
	paths, err := util.GatherAllPaths(root, chartExts, maxNum)
	if err != nil {
		return nil, fmt.Errorf("could not read dir: %w", err)
	}
	return paths, nil
}

func (r collectionsReport) write(w io.Writer) {
	fmt.Fprintf(w, "files: %v\n", r.numFiles)
	fmt.Fprintf(w, "collections: %v\n", r.numCollections)
	fmt.Fprintf(w, "songs: %v\n", r.numSongs)
	fmt.Fprintf(w, "failures: %v\n", r.numFailures)
	fmt.Fprintf(w, "bars: %v\n", util.Sum(r.barsPerSong))
	fmt.Fprintf(w, "chords: %v\n", util.Sum(r.chordsPerSong))
	fmt.Fprintln(w, "styles:")
	for _, style := range util.GetKeys(r.styles) {
		fmt.Fprintf(w, "  %s: %v\n", style, r.styles[style])
	}
	fmt.Fprintln(w, "qualities:")
	for _, q := range util.GetKeys(r.qualities) {
		fmt.Fprintf(w, "  %q: %v\n", q, r.qualities[q])
	}
}
