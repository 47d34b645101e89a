package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/go-tangra/go-tangra-mainboard/internal/board"
)

func main() {
	formFactor := flag.String("f", "ATX", "board form factor label")
	outputFile := flag.String("o", "", "write JSON output to file instead of stdout")
	flag.Parse()

	snap := board.New(*formFactor).Snapshot()

	var w *os.File
	if *outputFile != "" {
		f, err := os.Create(*outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: cannot create output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		fmt.Fprintf(os.Stderr, "error: encoding board topology: %v\n", err)
		os.Exit(1)
	}

	if *outputFile != "" {
		fmt.Fprintf(os.Stderr, "board topology written to %s\n", *outputFile)
	}
}
