package file

import (
	"os"
	"regexp"

	"github.com/jsphweid/ireal/constants"
)

// a URL runs until whitespace or the end of an HTML attribute
var urlPattern = regexp.MustCompile(regexp.QuoteMeta(constants.URLScheme) + `[^\s"'<>]+`)

// FindURLs returns every collection URL in text, in order.
func FindURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}

// ReadURLs reads a plain text or HTML export and returns the collection
// URLs in it.
func ReadURLs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FindURLs(string(data)), nil
}
