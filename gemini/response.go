package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/tubescribe/tubescribe/video"
	"google.golang.org/genai"
)

type payload struct {
	Title             string `json:"title"`
	FullTranscription string `json:"fullTranscription"`
}

// Parse turns a model response into a Transcript. Both fields are required;
// an answer missing either is a failure, not a partial success.
func Parse(resp *genai.GenerateContentResponse) (*video.Transcript, error) {
	if resp == nil {
		return nil, ErrEmptyResponse
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, ErrEmptyResponse
	}

	var p payload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	switch {
	case strings.TrimSpace(p.Title) == "":
		return nil, fmt.Errorf("%w: missing title", ErrSchemaViolation)
	case strings.TrimSpace(p.FullTranscription) == "":
		return nil, fmt.Errorf("%w: missing fullTranscription", ErrSchemaViolation)
	}

	return &video.Transcript{
		Title:             p.Title,
		FullTranscription: p.FullTranscription,
		Sources:           Sources(resp),
	}, nil
}

// Sources maps the grounding chunks of the first candidate to citations.
func Sources(resp *genai.GenerateContentResponse) []video.Source {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}

	metadata := resp.Candidates[0].GroundingMetadata
	if metadata == nil {
		return nil
	}

	sources := lo.Map(metadata.GroundingChunks, func(chunk *genai.GroundingChunk, _ int) video.Source {
		if chunk == nil || chunk.Web == nil {
			return video.NewSource("", "")
		}
		return video.NewSource(chunk.Web.Title, chunk.Web.URI)
	})

	if len(sources) == 0 {
		return nil
	}
	return sources
}
