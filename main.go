// Command patent-fetcher prints JSON-encoded information about a patent.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dhrosa/patent-fetcher/browser"
	"github.com/dhrosa/patent-fetcher/patent"
	"github.com/dustin/go-humanize"
	"github.com/k0kubun/pp"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func main() {
	var (
		timeout time.Duration
		debug   bool
	)
	cmd := &cobra.Command{
		Use:   "patent-fetcher [id-or-url]",
		Short: "Fetch JSON-encoded information about a patent",
		Long: `Fetch JSON-encoded information about a patent.

The argument is a Google Patent ID to fetch data for. If a URL is specified
instead, data is fetched from that URL rather than forming the URL
automatically; this is useful for debugging (e.g. fetching from a local
file:// URL).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], timeout, debug)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "deadline for the browser session")
	cmd.Flags().BoolVar(&debug, "debug", false, "dump fetch metadata to stderr")

	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(idOrURL string, timeout time.Duration, debug bool) error {
	url := idOrURL
	if !strings.Contains(idOrURL, "/") {
		url = "https://patents.google.com/patent/" + idOrURL
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := browser.Fetch(ctx, url)
	if err != nil {
		return errors.Wrap(err, "could not fetch page")
	}
	log.Printf("fetched %s (%s)", result.URL, humanize.Bytes(uint64(len(result.Body))))
	if debug {
		meta := result
		meta.Body = fmt.Sprintf("%d bytes", len(result.Body))
		pp.Fprintln(os.Stderr, meta)
	}

	record, err := patent.Parse(result.Body)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not encode record")
	}
	fmt.Println(string(out))
	return nil
}
