package gemini

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tubescribe/tubescribe/video"
	"google.golang.org/genai"
)

func response(text string, chunks ...*genai.GroundingChunk) *genai.GenerateContentResponse {
	candidate := &genai.Candidate{
		Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}},
	}
	if len(chunks) > 0 {
		candidate.GroundingMetadata = &genai.GroundingMetadata{GroundingChunks: chunks}
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{candidate}}
}

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("A complete answer becomes a transcript with sources", func() {
			resp := response(`{"title":"Go Concurrency","fullTranscription":"Hello gophers"}`,
				&genai.GroundingChunk{Web: &genai.GroundingChunkWeb{Title: "youtube.com", URI: "https://vertexaisearch.example/1"}},
				&genai.GroundingChunk{Web: &genai.GroundingChunkWeb{}},
				&genai.GroundingChunk{},
			)

			transcript, err := Parse(resp)
			So(err, ShouldBeNil)
			So(transcript.Title, ShouldEqual, "Go Concurrency")
			So(transcript.FullTranscription, ShouldEqual, "Hello gophers")
			So(transcript.Sources, ShouldResemble, []video.Source{
				{Title: "youtube.com", URI: "https://vertexaisearch.example/1"},
				{Title: "Source", URI: "#"},
				{Title: "Source", URI: "#"},
			})
		})

		Convey("No grounding means no sources", func() {
			transcript, err := Parse(response(`{"title":"a","fullTranscription":"b"}`))
			So(err, ShouldBeNil)
			So(transcript.Sources, ShouldBeNil)
		})

		Convey("Empty text is ErrEmptyResponse", func() {
			_, err := Parse(response("  "))
			So(err, ShouldEqual, ErrEmptyResponse)
			So(err.Error(), ShouldEqual, "No response from AI")

			_, err = Parse(&genai.GenerateContentResponse{})
			So(err, ShouldEqual, ErrEmptyResponse)

			_, err = Parse(nil)
			So(err, ShouldEqual, ErrEmptyResponse)
		})

		Convey("Invalid JSON is a decode error", func() {
			_, err := Parse(response("Sorry, I can't help with that."))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldStartWith, "decode response:")
		})

		Convey("A missing fullTranscription is a schema violation", func() {
			_, err := Parse(response(`{"title":"Only a title"}`))
			So(errors.Is(err, ErrSchemaViolation), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "fullTranscription")
		})

		Convey("A blank title is a schema violation", func() {
			_, err := Parse(response(`{"title":" ","fullTranscription":"words"}`))
			So(errors.Is(err, ErrSchemaViolation), ShouldBeTrue)
		})
	})
}

func TestGenerateConfig(t *testing.T) {
	Convey("generateConfig", t, func() {
		Convey("Requests JSON with both fields required", func() {
			config := generateConfig(true)
			So(config.ResponseMIMEType, ShouldEqual, "application/json")
			So(config.ResponseSchema.Type, ShouldEqual, genai.TypeObject)
			So(config.ResponseSchema.Required, ShouldResemble, []string{"title", "fullTranscription"})
			So(config.Tools, ShouldHaveLength, 1)
			So(config.Tools[0].GoogleSearch, ShouldNotBeNil)
		})

		Convey("Search grounding can be turned off", func() {
			So(generateConfig(false).Tools, ShouldBeEmpty)
		})
	})
}

func TestPrompt(t *testing.T) {
	Convey("Prompt embeds the URL", t, func() {
		So(Prompt("https://youtu.be/x"), ShouldContainSubstring, "https://youtu.be/x.")
		So(Prompt("https://youtu.be/x"), ShouldContainSubstring, "JSON")
	})
}
