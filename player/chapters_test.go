package player

import (
	"testing"

	"github.com/autoskip-cli/autoskip/skip"
	. "github.com/smartystreets/goconvey/convey"
)

func TestChapters(t *testing.T) {
	Convey("Given the default windows", t, func() {
		w := skip.DefaultWindows()

		Convey("With a known duration both windows are marked", func() {
			So(Chapters(w, 1200, true), ShouldResemble, []Chapter{
				{Title: "Intro", Time: 0},
				{Title: "Opening", Time: 85},
				{Title: "Main", Time: 105},
				{Title: "Ending", Time: 1110},
				{Title: "Preview", Time: 1170},
			})
		})

		Convey("Without a duration only the opening is marked", func() {
			So(Chapters(w, 0, false), ShouldResemble, []Chapter{
				{Title: "Intro", Time: 0},
				{Title: "Opening", Time: 85},
				{Title: "Main", Time: 105},
			})
		})

		Convey("Markers past the end are dropped and the rest ordered", func() {
			So(Chapters(w, 100, true), ShouldResemble, []Chapter{
				{Title: "Intro", Time: 0},
				{Title: "Ending", Time: 10},
				{Title: "Preview", Time: 70},
				{Title: "Opening", Time: 85},
			})
		})
	})

	Convey("Given an opening at zero no intro marker is added", t, func() {
		w := skip.Windows{Opening: skip.Window{Start: 0, End: 90}, Ending: skip.Window{Start: 1300, End: 1340}}

		So(Chapters(w, 0, false), ShouldResemble, []Chapter{
			{Title: "Opening", Time: 0},
			{Title: "Main", Time: 90},
			{Title: "Ending", Time: 1300},
			{Title: "Preview", Time: 1340},
		})
	})
}
