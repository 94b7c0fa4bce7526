// Package output formats and writes the resolved commit range.
package output

import (
	"strconv"

	"github.com/MyCarrier-DevOps/go-gitrange/internal/engine"
)

// GetVariables computes the output variables for a resolution result.
func GetVariables(result engine.Result) map[string]string {
	return map[string]string{
		"Base":      result.Base,
		"Head":      result.Head,
		"MergeBase": result.MergeBase,
		"Depth":     strconv.Itoa(result.Depth),
	}
}
