// Command vtreplay feeds a captured terminal byte stream through a headless
// terminal and prints the resulting escape-sequence dump of its final state.
//
//	vtreplay -width 80 -height 24 session.typescript
//
// With no file argument it reads from stdin.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	headlessterm "github.com/vtcore/headlessterm"
)

func main() {
	width := flag.Int("width", 80, "terminal width in columns")
	height := flag.Int("height", 24, "terminal height in rows")
	scrollback := flag.Int("scrollback", 10000, "maximum retained scrollback lines")
	screenOnly := flag.Bool("screen-only", false, "dump only the visible screen, not retained scrollback")
	flag.Parse()

	var in io.Reader = os.Stdin
	if args := flag.Args(); len(args) > 0 {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "vtreplay:", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	data, err := io.ReadAll(in)
	if err != nil {
		fmt.Fprintln(os.Stderr, "vtreplay:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	term := headlessterm.New(*scrollback, headlessterm.Size{Width: *width, Height: *height}, headlessterm.WithLogger(logger))
	term.Process(data)

	region := headlessterm.RegionAll()
	if *screenOnly {
		region = headlessterm.RegionScreen()
	}
	os.Stdout.Write(term.Contents(region))
}
