package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/ireal/model"
	"github.com/jsphweid/ireal/render"
	"github.com/spf13/cobra"
)

var showRaw bool

func init() {
	renderCmd.Flags().BoolVar(&showRaw, "raw", false, "print the descrambled music text instead of the chart")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <url|file>...",
	Short: "Prints songs as charts",
	Long:  `Decodes every collection given and prints each song as a fixed-width chart.`,
	Args:  cobra.MinimumNArgs(1),
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
			writeCollection(cmd.OutOrStdout(), c, showRaw)
			for _, f := range c.Failures {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped song %d %q: %v\n", f.Index, f.Title, f.Err)
			}
		}
		return nil
	},
}

func writeCollection(w io.Writer, c *model.Collection, raw bool) {
	fmt.Fprintf(w, "== %s ==\n", c.Title)
	for _, s := range c.Songs {
		fmt.Fprintf(w, "\n%s (%s)\n%s, %s\n", s.Title, s.Composer, s.Style, s.Key)
		if raw {
			fmt.Fprintln(w, s.Music.Raw)
			continue
		}
		fmt.Fprint(w, render.Render(s.Music))
	}
}
