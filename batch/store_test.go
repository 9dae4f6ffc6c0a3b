package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/tubescribe/tubescribe/intake"
	"github.com/tubescribe/tubescribe/video"
)

func transcriptFor(url string) *video.Transcript {
	return &video.Transcript{
		Title:             "Title of " + url,
		FullTranscription: "Words spoken in " + url,
		Sources:           []video.Source{video.NewSource("", "")},
	}
}

func okRetriever() Retriever {
	return RetrieverFunc(func(_ context.Context, url string) (*video.Transcript, error) {
		return transcriptFor(url), nil
	})
}

func statuses(results []video.Result) []video.Status {
	return lo.Map(results, func(r video.Result, _ int) video.Status { return r.Status })
}

func TestSubmit(t *testing.T) {
	Convey("Given an empty store", t, func() {
		store := NewStore(okRetriever())

		Convey("Invalid input changes nothing", func() {
			b, err := store.Submit("hello, https://example.com")
			So(errors.Is(err, intake.ErrNoValidLinks), ShouldBeTrue)
			So(b, ShouldBeNil)
			So(store.Results(), ShouldBeEmpty)
			So(store.Processing(), ShouldBeFalse)
		})

		Convey("Valid input creates pending placeholders synchronously", func() {
			b, err := store.Submit("https://youtu.be/a\nhttps://youtu.be/b, https://youtu.be/c")
			So(err, ShouldBeNil)
			So(b.Results, ShouldHaveLength, 3)
			So(store.Processing(), ShouldBeTrue)

			results := store.Results()
			So(statuses(results), ShouldResemble, []video.Status{video.StatusPending, video.StatusPending, video.StatusPending})
			So(lo.Map(results, func(r video.Result, _ int) string { return r.URL }), ShouldResemble,
				[]string{"https://youtu.be/a", "https://youtu.be/b", "https://youtu.be/c"})
			So(lo.Uniq(b.IDs()), ShouldHaveLength, 3)

			Convey("A second submission is rejected while busy", func() {
				_, err := store.Submit("https://youtu.be/d")
				So(err, ShouldEqual, ErrBusy)
				So(store.Results(), ShouldHaveLength, 3)
			})
		})
	})

	Convey("Given a store with a finished batch", t, func() {
		store := NewStore(okRetriever())
		_, _, err := store.Process(context.Background(), "https://youtu.be/old1\nhttps://youtu.be/old2")
		So(err, ShouldBeNil)
		old := store.Results()

		Convey("A new batch is prepended as a contiguous block in typed order", func() {
			b, err := store.Submit("https://youtu.be/n1,https://youtu.be/n2,https://youtu.be/n3")
			So(err, ShouldBeNil)

			results := store.Results()
			So(results, ShouldHaveLength, 5)
			So(results[:3], ShouldResemble, b.Results)
			So(lo.Map(results[:3], func(r video.Result, _ int) string { return r.URL }), ShouldResemble,
				[]string{"https://youtu.be/n1", "https://youtu.be/n2", "https://youtu.be/n3"})
			So(results[3:], ShouldResemble, old)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a batch where only the second item succeeds", t, func() {
		var store *Store
		var violations []string
		calls := 0

		store = NewStore(RetrieverFunc(func(_ context.Context, url string) (*video.Transcript, error) {
			calls++
			snapshot := store.Results()
			processing := lo.Filter(snapshot, func(r video.Result, _ int) bool { return r.Status == video.StatusProcessing })
			if len(processing) != 1 || processing[0].URL != url {
				violations = append(violations, fmt.Sprintf("call %d: %d processing", calls, len(processing)))
			}

			if strings.HasSuffix(url, "/2") {
				return transcriptFor(url), nil
			}
			return nil, fmt.Errorf("no captions for %s", url)
		}))

		b, err := store.Submit("https://youtu.be/1\nhttps://youtu.be/2\nhttps://youtu.be/3\nhttps://youtu.be/4")
		So(err, ShouldBeNil)

		summary := store.Run(context.Background(), b)

		Convey("Every item reaches a terminal state", func() {
			So(summary, ShouldResemble, Summary{Total: 4, Completed: 1, Failed: 3})
			So(statuses(store.Results()), ShouldResemble, []video.Status{
				video.StatusError, video.StatusCompleted, video.StatusError, video.StatusError,
			})
			So(store.Processing(), ShouldBeFalse)
		})

		Convey("Items are processed one at a time in order", func() {
			So(calls, ShouldEqual, 4)
			So(violations, ShouldBeEmpty)
		})

		Convey("The successful item carries its transcript", func() {
			r := store.Results()[1]
			So(r.Title, ShouldEqual, "Title of https://youtu.be/2")
			So(r.Transcription, ShouldEqual, "Words spoken in https://youtu.be/2")
			So(r.Sources, ShouldResemble, []video.Source{{Title: "Source", URI: "#"}})
			So(r.Error, ShouldBeEmpty)
		})

		Convey("Failed items carry the error message and nothing else", func() {
			r := store.Results()[0]
			So(r.Error, ShouldEqual, "no captions for https://youtu.be/1")
			So(r.Title, ShouldBeEmpty)
			So(r.Sources, ShouldBeNil)
		})

		Convey("A new batch is accepted afterwards", func() {
			_, err := store.Submit("https://youtu.be/5")
			So(err, ShouldBeNil)
		})
	})

	Convey("Given a retriever failing without a message", t, func() {
		store := NewStore(RetrieverFunc(func(context.Context, string) (*video.Transcript, error) {
			return nil, errors.New("")
		}))
		_, summary, err := store.Process(context.Background(), "https://youtu.be/x")
		So(err, ShouldBeNil)
		So(summary.Failed, ShouldEqual, 1)
		So(store.Results()[0].Error, ShouldEqual, video.FailedMessage)
	})

	Convey("Given a retriever returning nothing at all", t, func() {
		store := NewStore(RetrieverFunc(func(context.Context, string) (*video.Transcript, error) {
			return nil, nil
		}))
		_, _, _ = store.Process(context.Background(), "https://youtu.be/x")
		So(store.Results()[0].Status, ShouldEqual, video.StatusError)
		So(store.Results()[0].Error, ShouldEqual, video.FailedMessage)
	})

	Convey("Given the same URL twice in one batch", t, func() {
		calls := 0
		store := NewStore(RetrieverFunc(func(_ context.Context, url string) (*video.Transcript, error) {
			calls++
			if calls == 1 {
				return transcriptFor(url), nil
			}
			return nil, errors.New("second try failed")
		}))

		b, _, err := store.Process(context.Background(), "https://youtu.be/dup, https://youtu.be/dup")
		So(err, ShouldBeNil)

		Convey("Each entry is tracked by its own id", func() {
			So(b.IDs()[0], ShouldNotEqual, b.IDs()[1])
			first, _ := store.Get(b.IDs()[0])
			second, _ := store.Get(b.IDs()[1])
			So(first.Status, ShouldEqual, video.StatusCompleted)
			So(second.Status, ShouldEqual, video.StatusError)
			So(second.Error, ShouldEqual, "second try failed")
		})
	})

	Convey("The context is forwarded to the retriever", t, func() {
		type ctxKey struct{}
		var seen any
		store := NewStore(RetrieverFunc(func(ctx context.Context, url string) (*video.Transcript, error) {
			seen = ctx.Value(ctxKey{})
			return transcriptFor(url), nil
		}))

		ctx := context.WithValue(context.Background(), ctxKey{}, "marker")
		_, _, _ = store.Process(ctx, "https://youtu.be/x")
		So(seen, ShouldEqual, "marker")
	})
}

func TestClear(t *testing.T) {
	Convey("Given a batch that is cleared between items", t, func() {
		var store *Store
		calls := 0
		store = NewStore(RetrieverFunc(func(_ context.Context, url string) (*video.Transcript, error) {
			calls++
			if calls == 1 {
				store.Clear()
			}
			return transcriptFor(url), nil
		}))

		_, summary, err := store.Process(context.Background(), "https://youtu.be/a\nhttps://youtu.be/b\nhttps://youtu.be/c")
		So(err, ShouldBeNil)

		Convey("The loop still completes and releases the store", func() {
			So(store.Processing(), ShouldBeFalse)
			So(store.Results(), ShouldBeEmpty)
			So(summary, ShouldResemble, Summary{Total: 3, Dropped: 3})
			So(calls, ShouldEqual, 1)
		})

		Convey("New submissions work again", func() {
			_, _, err := store.Process(context.Background(), "https://youtu.be/d")
			So(err, ShouldBeNil)
			So(store.Results(), ShouldHaveLength, 1)
			So(store.Results()[0].Status, ShouldEqual, video.StatusCompleted)
		})
	})

	Convey("Clearing an idle store empties it", t, func() {
		store := NewStore(okRetriever())
		_, _, _ = store.Process(context.Background(), "https://youtu.be/a")
		store.Clear()
		So(store.Results(), ShouldBeEmpty)
		_, ok := store.Get("anything")
		So(ok, ShouldBeFalse)
	})
}

func TestSnapshots(t *testing.T) {
	Convey("Snapshots are copies", t, func() {
		store := NewStore(okRetriever())
		b, _, _ := store.Process(context.Background(), "https://youtu.be/a")

		snapshot := store.Results()
		snapshot[0].Title = "mutated"
		snapshot[0].Sources[0].Title = "mutated"

		r, ok := store.Get(b.IDs()[0])
		So(ok, ShouldBeTrue)
		So(r.Title, ShouldEqual, "Title of https://youtu.be/a")
		So(r.Sources[0].Title, ShouldEqual, "Source")
	})
}

func TestSubscribe(t *testing.T) {
	Convey("Given a subscriber", t, func() {
		ids := 0
		store := NewStore(okRetriever(), WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("id-%d", ids)
		}))
		events, cancel := store.Subscribe()

		_, _, err := store.Process(context.Background(), "https://youtu.be/a\nhttps://youtu.be/b")
		So(err, ShouldBeNil)
		store.Clear()
		cancel()

		var got []Event
		for e := range events {
			got = append(got, e)
		}

		Convey("It sees every mutation in order", func() {
			So(lo.Map(got, func(e Event, _ int) EventType { return e.Type }), ShouldResemble, []EventType{
				EventBatchStarted,
				EventResultUpdated, EventResultUpdated,
				EventResultUpdated, EventResultUpdated,
				EventBatchFinished,
				EventResultsCleared,
			})

			So(got[0].BatchID, ShouldEqual, "id-1")
			So(got[0].Results, ShouldHaveLength, 2)
			So(got[1].Result.ID, ShouldEqual, "id-2")
			So(got[1].Result.Status, ShouldEqual, video.StatusProcessing)
			So(got[2].Result.Status, ShouldEqual, video.StatusCompleted)
			So(got[5].Summary.Completed, ShouldEqual, 2)
		})

		Convey("Cancelling twice is harmless", func() {
			So(cancel, ShouldNotPanic)
		})
	})
}

func TestHosts(t *testing.T) {
	Convey("WithHosts changes what Submit accepts", t, func() {
		store := NewStore(okRetriever(), WithHosts([]string{"vimeo.com"}))
		_, err := store.Submit("https://youtu.be/a")
		So(err, ShouldEqual, intake.ErrNoValidLinks)
		_, err = store.Submit("https://vimeo.com/1")
		So(err, ShouldBeNil)
	})
}
