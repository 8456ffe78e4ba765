package main

import (
	"fmt"
	"io"
	"time"

	"parcel/internal/pipeline"
)

func printStageTimings(out io.Writer, timings pipeline.Timings) {
	if out == nil {
		return
	}
	var printErr error
	if timings.Has(pipeline.StageChunk) || timings.Has(pipeline.StageResolve) {
		resolved := timings.Sum(pipeline.StageChunk, pipeline.StageResolve)
		_, printErr = fmt.Fprintf(out, "resolved %.1f ms\n", toMillis(resolved))
		if printErr != nil {
			panic(printErr)
		}
	}
	if timings.Has(pipeline.StageStage) {
		_, printErr = fmt.Fprintf(out, "staged %.1f ms\n", toMillis(timings.Duration(pipeline.StageStage)))
		if printErr != nil {
			panic(printErr)
		}
	}
	if timings.Has(pipeline.StageCheck) {
		_, printErr = fmt.Fprintf(out, "checked %.1f ms\n", toMillis(timings.Duration(pipeline.StageCheck)))
		if printErr != nil {
			panic(printErr)
		}
	}
	if timings.Has(pipeline.StageBuild) {
		_, printErr = fmt.Fprintf(out, "built %.1f ms\n", toMillis(timings.Duration(pipeline.StageBuild)))
		if printErr != nil {
			panic(printErr)
		}
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
