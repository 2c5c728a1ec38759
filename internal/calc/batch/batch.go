// Package batch evaluates the capacity of many wells in one request.
package batch

import (
	"fmt"

	"Nodal/internal/calc/calcerr"
	"Nodal/internal/calc/ipr"
)

// MaxItems caps a single batch.
const MaxItems = 1000

type Input struct {
	Items []ipr.WellInput `json:"items"`
}

type Result struct {
	Results []ipr.Summary `json:"results"`
}

func Calculate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, calcerr.Invalid("no items")
	}
	if len(in.Items) > MaxItems {
		return Result{}, calcerr.Invalid("%d items exceeds the batch limit of %d", len(in.Items), MaxItems)
	}
	out := Result{Results: make([]ipr.Summary, 0, len(in.Items))}
	for i, item := range in.Items {
		s, err := ipr.Capacity(item.TestPoint, item.Efficiency())
		if err != nil {
			return Result{}, fmt.Errorf("items[%d]: %w", i, err)
		}
		out.Results = append(out.Results, s)
	}
	return out, nil
}
