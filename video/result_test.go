package video

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStatus(t *testing.T) {
	Convey("Status transitions", t, func() {
		So(StatusPending.CanBecome(StatusProcessing), ShouldBeTrue)
		So(StatusPending.CanBecome(StatusCompleted), ShouldBeFalse)
		So(StatusProcessing.CanBecome(StatusCompleted), ShouldBeTrue)
		So(StatusProcessing.CanBecome(StatusError), ShouldBeTrue)
		So(StatusProcessing.CanBecome(StatusPending), ShouldBeFalse)

		for _, s := range []Status{StatusCompleted, StatusError} {
			So(s.Terminal(), ShouldBeTrue)
			for _, next := range []Status{StatusPending, StatusProcessing, StatusCompleted, StatusError} {
				So(s.CanBecome(next), ShouldBeFalse)
			}
		}
	})
}

func TestResult(t *testing.T) {
	Convey("Given a pending result", t, func() {
		r := NewPending("id-1", "https://youtu.be/abc")
		So(r.Status, ShouldEqual, StatusPending)

		Convey("It cannot complete before it starts", func() {
			err := r.Complete(Transcript{Title: "x", FullTranscription: "y"})
			So(errors.Is(err, ErrInvalidTransition), ShouldBeTrue)
			So(r.Status, ShouldEqual, StatusPending)
			So(r.Title, ShouldBeEmpty)
		})

		Convey("When started", func() {
			So(r.Start(), ShouldBeNil)
			So(r.Status, ShouldEqual, StatusProcessing)

			Convey("Starting twice is rejected", func() {
				So(errors.Is(r.Start(), ErrInvalidTransition), ShouldBeTrue)
			})

			Convey("Completing attaches the transcript", func() {
				sources := []Source{NewSource("Wiki", "https://example.com")}
				So(r.Complete(Transcript{Title: "Talk", FullTranscription: "hello", Sources: sources}), ShouldBeNil)
				So(r.Status, ShouldEqual, StatusCompleted)
				So(r.Title, ShouldEqual, "Talk")
				So(r.Transcription, ShouldEqual, "hello")
				So(r.Sources, ShouldResemble, sources)
				So(r.Error, ShouldBeEmpty)

				Convey("A terminal result is never mutated again", func() {
					So(errors.Is(r.Fail(errors.New("late")), ErrInvalidTransition), ShouldBeTrue)
					So(r.Status, ShouldEqual, StatusCompleted)
					So(r.Error, ShouldBeEmpty)
				})
			})

			Convey("Failing records the message", func() {
				So(r.Fail(errors.New("quota exceeded")), ShouldBeNil)
				So(r.Status, ShouldEqual, StatusError)
				So(r.Error, ShouldEqual, "quota exceeded")
				So(r.Sources, ShouldBeNil)
			})

			Convey("Failing without a message uses the fallback", func() {
				So(r.Fail(errors.New("")), ShouldBeNil)
				So(r.Error, ShouldEqual, FailedMessage)
			})
		})
	})
}

func TestSource(t *testing.T) {
	Convey("NewSource fills in blanks", t, func() {
		So(NewSource("", ""), ShouldResemble, Source{Title: "Source", URI: "#"})
		So(NewSource("Page", "https://a.b"), ShouldResemble, Source{Title: "Page", URI: "https://a.b"})
		So(NewSource("", "").Linked(), ShouldBeFalse)
		So(NewSource("", "https://a.b").Linked(), ShouldBeTrue)
	})
}

func TestClone(t *testing.T) {
	Convey("Clone does not share the sources slice", t, func() {
		r := Result{ID: "1", Sources: []Source{{Title: "a", URI: "b"}}}
		c := r.Clone()
		c.Sources[0].Title = "changed"
		So(r.Sources[0].Title, ShouldEqual, "a")
	})
}
