package cmd

import (
	"errors"
	"os"

	"github.com/jsphweid/ireal/db"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var indexMax int

func init() {
	indexCmd.Flags().IntVarP(&indexMax, "max", "n", 0, "read at most this many files from a directory (0 reads all)")
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index <dir|file|url>...",
	Short: "Stores songs in DynamoDB",
	Long:  `Decodes collections and stores each song in the configured DynamoDB table so the server can look it up by ID.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Dynamo.Endpoint == "" {
			return errors.New("no dynamo endpoint configured")
		}
		store, err := db.Connect(cfg.Dynamo.Endpoint, cfg.Dynamo.Region, cfg.Dynamo.Table)
		if err != nil {
			return err
		}
		urls, err := expandArgs(args, indexMax)
		if err != nil {
			return err
		}
		return index(cmd, store, urls)
	},
}

// expandArgs is gatherURLs that also accepts directories.
func expandArgs(args []string, maxNum int) ([]string, error) {
	var flat []string
	for _, arg := range args {
		if fi, err := os.Stat(arg); err == nil && fi.IsDir() {
			paths, err := gatherPaths(arg, maxNum)
			if err != nil {
				return nil, err
			}
			flat = append(flat, paths...)
			continue
		}
		flat = append(flat, arg)
	}
	return gatherURLs(flat)
}

func index(cmd *cobra.Command, store *db.Store, urls []string) error {
	dec := newDecoder()
	var stored int
	for _, url := range urls {
		c, err := dec.DecodeCollection(cmd.Context(), url)
		if err != nil {
			return err
		}
		if err := store.PutCollection(c); err != nil {
			return err
		}
		stored += len(c.Songs)
		logger.Info("indexed collection",
			zap.String("title", c.Title),
			zap.Int("songs", len(c.Songs)),
			zap.Int("failures", len(c.Failures)))
	}
	logger.Info("indexing done", zap.Int("songs", stored))
	return nil
}
