// Command addsig stamps a signature image, and by default today's date, onto
// one page of a PDF.
//
// Usage:
//
//	addsig [flags] input.pdf
//
// The -x and -y flags give the stamp's lower-left corner in PDF points.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go-signpdf/internal/config"
	"go-signpdf/internal/pdf"
	"go-signpdf/internal/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// now is replaced in tests.
var now = time.Now

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("addsig", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: addsig [flags] input.pdf")
		fs.PrintDefaults()
	}

	output := fs.String("o", "", "output `file` (default <input>_signed.pdf)")
	sigPath := fs.String("s", "signature.png", "signature image `file`")
	x := fs.Int("x", 400, "stamp x position in points")
	y := fs.Int("y", 100, "stamp y position in points, from the bottom edge")
	page := fs.Int("page", 1, "page to sign (1-based)")
	width := fs.Float64("width", 0, "stamp width in points (default from config)")
	height := fs.Float64("height", 0, "stamp height in points (default from config)")
	withDate := fs.Bool("date", true, "print the date below the signature")
	dateFormat := fs.String("date-format", "", "Go time layout for the date (default from config)")
	configPath := fs.String("config", "", "optional YAML configuration `file`")
	stretch := fs.Bool("stretch", false, "stretch the signature to fill the stamp box")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	input := fs.Arg(0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if *width <= 0 {
		*width = cfg.Stamp.Width
	}
	if *height <= 0 {
		*height = cfg.Stamp.Height
	}
	if *dateFormat == "" {
		*dateFormat = cfg.Stamp.DateFormat
	}
	if *output == "" {
		*output = utils.SignedFilename(input)
	}

	if _, err := os.Stat(input); err != nil {
		fmt.Fprintf(stderr, "Error: input file %s not found\n", input)
		return 1
	}
	if _, err := os.Stat(*sigPath); err != nil {
		fmt.Fprintf(stderr, "Error: signature file %s not found\n", *sigPath)
		return 1
	}

	doc, err := os.ReadFile(input)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to read %s: %v\n", input, err)
		return 1
	}
	raw, err := os.ReadFile(*sigPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to read %s: %v\n", *sigPath, err)
		return 1
	}
	sig, err := pdf.DecodeSignature(raw)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	stamp := pdf.Stamp{
		Signature: sig,
		Page:      *page,
		At:        pdf.Point{X: float64(*x), Y: float64(*y)},
		Size:      pdf.Size{W: *width, H: *height},
		Stretch:   *stretch,
	}
	if *withDate {
		stamp.DateText = now().Format(*dateFormat)
	}

	signed, err := pdf.StampPDF(doc, stamp)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := os.WriteFile(*output, signed, 0o644); err != nil {
		fmt.Fprintf(stderr, "Error: failed to write %s: %v\n", *output, err)
		return 1
	}

	fmt.Fprintf(stdout, "Signed PDF saved as %s\n", *output)
	return 0
}
