package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/ireal/constants"
	"github.com/jsphweid/ireal/file"
	"github.com/jsphweid/ireal/song"
)

// gatherURLs turns arguments into collection URLs. An argument is either a
// URL or a file holding any number of them.
func gatherURLs(args []string) ([]string, error) {
	var res []string
	for _, arg := range args {
		if strings.HasPrefix(arg, constants.URLScheme) {
			res = append(res, arg)
			continue
		}
		urls, err := file.ReadURLs(arg)
		if err != nil {
			return nil, err
		}
		if len(urls) == 0 {
			return nil, fmt.Errorf("no %s urls in %s", constants.URLScheme, arg)
		}
		res = append(res, urls...)
	}
	return res, nil
}

func newDecoder() *song.Decoder {
	return song.NewDecoder(song.WithLogger(logger), song.WithWorkers(cfg.Decode.Workers))
}
