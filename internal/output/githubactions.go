package output

import (
	"fmt"
	"io"

	"github.com/MyCarrier-DevOps/go-gitrange/internal/engine"
)

// Step output names consumed by downstream workflow steps.
var actionOutputs = []struct {
	name  string
	value func(engine.Result) string
}{
	{"base", func(r engine.Result) string { return r.Base }},
	{"head", func(r engine.Result) string { return r.Head }},
	{"merge-base", func(r engine.Result) string { return r.MergeBase }},
	{"depth", func(r engine.Result) string { return fmt.Sprintf("%d", r.Depth) }},
}

// WriteGitHubOutput appends the result as step outputs in the
// name=value format the $GITHUB_OUTPUT file expects.
func WriteGitHubOutput(w io.Writer, result engine.Result) error {
	for _, out := range actionOutputs {
		if _, err := fmt.Fprintf(w, "%s=%s\n", out.name, out.value(result)); err != nil {
			return fmt.Errorf("writing step output %s: %w", out.name, err)
		}
	}
	return nil
}
