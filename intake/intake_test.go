package intake

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTokens(t *testing.T) {
	Convey("Tokens splits on newlines and commas", t, func() {
		So(Tokens(" a ,b\n\n c,, "), ShouldResemble, []string{"a", "b", "c"})
		So(Tokens("   \n , "), ShouldBeEmpty)
	})
}

func TestParse(t *testing.T) {
	Convey("Given mixed input", t, func() {
		text := `https://www.youtube.com/watch?v=one,
not a url
https://youtu.be/two , ftp://youtube.com/three
https://vimeo.com/four
youtube.com/watch?v=relative
https://m.youtube.com/watch?v=five
https://notyoutube.com/watch?v=six
https://youtube.com.evil.io/watch?v=seven
https://youtu.be/two`

		links := Parse(text, nil)

		Convey("Only accepted absolute links survive, in order, duplicates kept", func() {
			So(links, ShouldResemble, []string{
				"https://www.youtube.com/watch?v=one",
				"https://youtu.be/two",
				"https://m.youtube.com/watch?v=five",
				"https://youtu.be/two",
			})
		})
	})

	Convey("Given custom hosts", t, func() {
		links := Parse("https://vimeo.com/1\nhttps://youtu.be/2", []string{" Vimeo.com "})
		So(links, ShouldResemble, []string{"https://vimeo.com/1"})
	})

	Convey("Hosts with ports and upper case still match", t, func() {
		So(Parse("HTTPS://WWW.YOUTUBE.COM:443/watch?v=x", nil), ShouldHaveLength, 1)
	})
}

func TestValidate(t *testing.T) {
	Convey("Validate", t, func() {
		Convey("Fails on empty input", func() {
			_, err := Validate("", nil)
			So(err, ShouldEqual, ErrNoValidLinks)
		})

		Convey("Fails on whitespace only", func() {
			_, err := Validate(" \n\t, ", nil)
			So(err, ShouldEqual, ErrNoValidLinks)
		})

		Convey("Fails when nothing is accepted", func() {
			_, err := Validate("https://example.com, hello", nil)
			So(err, ShouldEqual, ErrNoValidLinks)
		})

		Convey("Succeeds otherwise", func() {
			links, err := Validate("https://youtu.be/a", nil)
			So(err, ShouldBeNil)
			So(links, ShouldResemble, []string{"https://youtu.be/a"})
		})
	})
}
