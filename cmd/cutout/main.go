package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/cutout-dev/cutout"
)

func main() {
	modelPath := flag.String("model", "models/rmbg.onnx", "path to the ONNX model")
	output := flag.String("o", "out.png", "output file (format by extension)")
	trim := flag.Bool("trim", false, "crop the result to the detected subject")
	margin := flag.Int("margin", 20, "trim margin in pixels")
	square := flag.Bool("square", false, "force a square trim")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: cutout [flags] <image>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	engine, err := cutout.New(&cutout.Config{
		ModelPath:         *modelPath,
		IntraOpNumThreads: 2,
		InterOpNumThreads: 1,
		MemPattern:        true,
	})
	if err != nil {
		fatal(err)
	}
	defer engine.Close()

	img, err := cutout.Open(flag.Arg(0))
	if err != nil {
		fatal(err)
	}

	start := time.Now()
	var result image.Image
	if *trim {
		result, err = engine.RemoveBackgroundTrimmed(img, &cutout.TrimConfig{
			Margin:       *margin,
			MinThreshold: 10,
			Square:       *square,
		})
	} else {
		result, err = engine.RemoveBackground(img)
	}
	if err != nil {
		fatal(err)
	}
	fmt.Printf("time for removing background: %v\n", time.Since(start))

	if err := cutout.Save(result, *output); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
