package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHistory(t *testing.T) {
	Convey("Given an empty history", t, func() {
		var h History[string]

		Convey("Pop reports nothing", func() {
			_, ok := h.Pop()
			So(ok, ShouldBeFalse)
		})

		Convey("Entries come back most recent first", func() {
			h.Push("input")
			h.Push("results")
			So(h.Len(), ShouldEqual, 2)

			item, ok := h.Pop()
			So(ok, ShouldBeTrue)
			So(item, ShouldEqual, "results")

			item, _ = h.Pop()
			So(item, ShouldEqual, "input")
			So(h.Len(), ShouldEqual, 0)
		})
	})

	Convey("Given a limited history", t, func() {
		h := History[int]{Limit: 2}
		h.Push(1)
		h.Push(2)
		h.Push(3)

		So(h.Len(), ShouldEqual, 2)
		first, _ := h.Pop()
		second, _ := h.Pop()
		So([]int{first, second}, ShouldResemble, []int{3, 2})
	})
}
