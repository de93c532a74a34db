// Command pitchdemo is a thin demonstration shell around the pitchcore
// library: it generates synthetic tones, decodes WAV fixtures, or drives a
// live terminal tuner, but holds none of the pitch-estimation logic
// itself — the core is a value-based library, not a process.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "pitchdemo",
		Short: "Demonstrates the pitchcore detectors against synthetic or captured audio",
	}

	root.AddCommand(newToneCmd())
	root.AddCommand(newWavCmd())
	root.AddCommand(newLiveCmd())

	if err := root.Execute(); err != nil {
		log.Println(fmt.Sprintf("pitchdemo: %v", err))
		os.Exit(1)
	}
}
