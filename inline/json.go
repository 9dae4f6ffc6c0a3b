package inline

import (
	"encoding/json"
	"io"

	"github.com/tubescribe/tubescribe/batch"
	"github.com/tubescribe/tubescribe/video"
)

// Output is the machine-readable report of a run.
type Output struct {
	Results []video.Result `json:"results"`
	Summary batch.Summary  `json:"summary"`
	// Files lists the exported paths, if any.
	Files []string `json:"files,omitempty"`
}

func writeJson(out io.Writer, output *Output) error {
	if output.Results == nil {
		output.Results = []video.Result{}
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
