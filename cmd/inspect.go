package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/ireal/model"
	"github.com/jsphweid/ireal/tokenize"
	"github.com/jsphweid/ireal/util"
	"github.com/spf13/cobra"
)

var songIndex int

func init() {
	inspectCmd.Flags().IntVarP(&songIndex, "song", "s", -1, "only inspect the song at this index")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <url|file>",
	Short: "Dumps the tokens of each song",
	Long:  `Dumps the tokens of each song's music with their offsets, then a count per kind.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		urls, err := gatherURLs(args)
		if err != nil {
			return err
		}
		dec := newDecoder()
		for _, url := range urls {
			c, err := dec.DecodeCollection(cmd.Context(), url)
			if err != nil {
				return err
			}
			for i, s := range c.Songs {
				if songIndex >= 0 && i != songIndex {
					continue
				}
				if err := inspect(cmd.OutOrStdout(), s); err != nil {
					return err
				}
			}
		}
		return nil
	},
}

func inspect(w io.Writer, s model.Song) error {
	tokens, err := tokenize.Tokenize(s.Music.Raw)
	if err != nil {
		return fmt.Errorf("song %q: %w", s.Title, err)
	}
	fmt.Fprintf(w, "# %s\n", s.Title)
	counts := make(map[string]int)
	for _, tok := range tokens {
		fmt.Fprintf(w, "%5d  %s\n", tok.Pos, tok.Describe())
		counts[tok.Kind.String()]++
	}
	for _, kind := range util.GetKeys(counts) {
		fmt.Fprintf(w, "%s: %d\n", kind, counts[kind])
	}
	return nil
}
