// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/ezrec/sinefw/expr"
	"github.com/ezrec/sinefw/inference"
	"github.com/ezrec/sinefw/internal"
	"github.com/ezrec/sinefw/model"
)

func main() {
	var blobFile string
	var input string
	var step string
	var count int
	var trace uint64
	var verbose bool

	flag.StringVar(&blobFile, "b", "", "model blob file")
	flag.StringVar(&input, "x", "", "Evaluate a single phase expression")
	flag.StringVar(&step, "s", "0.1", "Sweep phase step expression")
	flag.IntVar(&count, "n", 126, "Sweep iterations, 0 to run forever")
	flag.Uint64Var(&trace, "t", inference.TRACE_INTERVAL, "Runs between debug traces, 0 to disable")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(blobFile) == 0 {
		log.Fatalf("%v: -b blob file required", os.Args[0])
	}

	if verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}
		defer logger.Sync()
		inference.SetLogger(logger)
	}

	inf, err := os.Open(blobFile)
	if err != nil {
		log.Fatalf("%v: %v", blobFile, err)
	}
	blob, err := model.LoadBlob(inf)
	inf.Close()
	if err != nil {
		log.Fatalf("%v: %v", blobFile, err)
	}

	eng := inference.NewEngine(blob, inference.WithTraceInterval(trace))
	eng.Initialize()

	report(os.Stdout, eng)

	defines := internal.IterSeq2Concat(model.Defines(), inference.Defines())

	if len(input) != 0 {
		x, err := expr.Eval32(input, defines)
		if err != nil {
			log.Fatalf("-x: %v", err)
		}
		evaluate(os.Stdout, eng, x)
		return
	}

	stepValue, err := expr.Eval32(step, defines)
	if err != nil {
		log.Fatalf("-s: %v", err)
	}
	if !(stepValue > 0) {
		log.Fatalf("-s: step %v must be positive", step)
	}

	demo(os.Stdout, eng, stepValue, count)
}
