package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/tubescribe/tubescribe/auth"
	"github.com/tubescribe/tubescribe/key"
	"github.com/zalando/go-keyring"
)

type fakeGemini struct {
	mu       sync.Mutex
	status   int
	body     string
	requests []map[string]any
	paths    []string
	apiKeys  []string
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var decoded map[string]any
	_ = json.Unmarshal(raw, &decoded)

	f.mu.Lock()
	f.requests = append(f.requests, decoded)
	f.paths = append(f.paths, r.URL.Path)
	f.apiKeys = append(f.apiKeys, r.Header.Get("x-goog-api-key"))
	status, body := f.status, f.body
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

const groundedAnswer = `{
  "candidates": [{
    "content": {"role": "model", "parts": [{"text": "{\"title\":\"Rob Pike - Concurrency is not Parallelism\",\"fullTranscription\":\"So I want to talk about concurrency.\"}"}]},
    "groundingMetadata": {"groundingChunks": [
      {"web": {"title": "youtube.com", "uri": "https://example.com/grounding/1"}},
      {"web": {}}
    ]}
  }]
}`

func TestRetrieve(t *testing.T) {
	Convey("Given a fake Gemini endpoint", t, func() {
		fake := &fakeGemini{status: http.StatusOK, body: groundedAnswer}
		server := httptest.NewServer(fake)
		Reset(server.Close)

		client, err := New(context.Background(), Config{
			APIKey:     "test-key",
			Model:      "gemini-test",
			Search:     true,
			BaseURL:    server.URL + "/",
			HTTPClient: server.Client(),
		})
		So(err, ShouldBeNil)
		So(client.Model(), ShouldEqual, "gemini-test")

		Convey("A grounded answer becomes a transcript", func() {
			transcript, err := client.Retrieve(context.Background(), "https://youtu.be/oV9rvDllKEg")
			So(err, ShouldBeNil)
			So(transcript.Title, ShouldEqual, "Rob Pike - Concurrency is not Parallelism")
			So(transcript.FullTranscription, ShouldEqual, "So I want to talk about concurrency.")
			So(transcript.Sources, ShouldHaveLength, 2)
			So(transcript.Sources[1].Title, ShouldEqual, "Source")
			So(transcript.Sources[1].URI, ShouldEqual, "#")

			Convey("The request carries the key, the model, the tool and the schema", func() {
				So(fake.apiKeys, ShouldResemble, []string{"test-key"})
				So(fake.paths[0], ShouldEndWith, "gemini-test:generateContent")

				raw, _ := json.Marshal(fake.requests[0])
				body := string(raw)
				So(body, ShouldContainSubstring, "googleSearch")
				So(body, ShouldContainSubstring, "application/json")
				So(body, ShouldContainSubstring, "fullTranscription")
				So(body, ShouldContainSubstring, "https://youtu.be/oV9rvDllKEg")
			})
		})

		Convey("An answer without a transcription fails", func() {
			fake.body = `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"title\":\"t\"}"}]}}]}`
			_, err := client.Retrieve(context.Background(), "https://youtu.be/x")
			So(errors.Is(err, ErrSchemaViolation), ShouldBeTrue)
		})

		Convey("An empty answer fails", func() {
			fake.body = `{"candidates":[]}`
			_, err := client.Retrieve(context.Background(), "https://youtu.be/x")
			So(err, ShouldEqual, ErrEmptyResponse)
		})

		Convey("API errors surface their message", func() {
			fake.status = http.StatusBadRequest
			fake.body = `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`
			_, err := client.Retrieve(context.Background(), "https://youtu.be/x")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "API key not valid")
		})
	})

	Convey("New refuses an empty key", t, func() {
		_, err := New(context.Background(), Config{APIKey: " "})
		So(err, ShouldEqual, ErrMissingAPIKey)
	})
}

func TestConfigFromViper(t *testing.T) {
	Convey("Given no key anywhere", t, func() {
		keyring.MockInit()
		for _, name := range auth.FallbackEnv {
			_ = os.Unsetenv(name)
		}
		viper.Set(key.GeminiAPIKey, "")
		viper.Set(key.GeminiModel, "gemini-custom")
		viper.Set(key.GeminiSearch, false)
		Reset(func() {
			viper.Set(key.GeminiAPIKey, "")
			viper.Set(key.GeminiSearch, true)
		})

		_, err := ConfigFromViper()
		So(err, ShouldEqual, ErrMissingAPIKey)

		Convey("A keyring entry is enough", func() {
			So(auth.SetAPIKey("stored"), ShouldBeNil)
			cfg, err := ConfigFromViper()
			So(err, ShouldBeNil)
			So(cfg.APIKey, ShouldEqual, "stored")
			So(cfg.Model, ShouldEqual, "gemini-custom")
			So(cfg.Search, ShouldBeFalse)
			So(strings.TrimSpace(cfg.BaseURL), ShouldBeEmpty)
		})
	})
}
