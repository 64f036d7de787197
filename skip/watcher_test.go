package skip

import (
	"testing"

	"github.com/autoskip-cli/autoskip/settings"
	. "github.com/smartystreets/goconvey/convey"
)

func newAttached(duration float64, toggles fakeToggles) (*Watcher, *fakeSurface, *fakeToast) {
	surface := newFakeSurface(duration)
	toast := &fakeToast{}
	w := New(toggles, &fakeLocator{surface: surface}, toast, Options{Debounce: DefaultDebounce})
	w.OnPlaybackStart()
	return w, surface, toast
}

func TestWatcherOpening(t *testing.T) {
	Convey("Given an attached watcher", t, func() {
		w, surface, toast := newAttached(1200, allOn())
		So(w.State(), ShouldEqual, Attached)
		So(surface.listeners(), ShouldEqual, 1)

		Convey("A sample inside the opening seeks to its end and notifies once", func() {
			surface.tick(90)
			So(surface.seekCalls(), ShouldResemble, []float64{105})
			So(toast.shown(), ShouldResemble, []string{OpeningSkipped})

			Convey("The next sample right after the jump is debounced", func() {
				surface.tick(106)
				So(surface.seekCalls(), ShouldHaveLength, 1)
				So(toast.shown(), ShouldHaveLength, 1)
			})
		})

		Convey("The window bounds are inclusive", func() {
			surface.tick(85)
			So(surface.seekCalls(), ShouldResemble, []float64{105})
		})

		Convey("A sample before the opening does nothing", func() {
			surface.tick(80)
			So(surface.seekCalls(), ShouldBeEmpty)
			So(toast.shown(), ShouldBeEmpty)
		})

	})

	Convey("Given an opening window at the very start", t, func() {
		surface := newFakeSurface(1200)
		w := New(allOn(), &fakeLocator{surface: surface}, &fakeToast{}, Options{
			Windows:  Windows{Opening: Window{Start: 0, End: 20}, Ending: Window{Start: -90, End: -30}, EndingRelative: true},
			Debounce: DefaultDebounce,
		})
		w.OnPlaybackStart()

		Convey("Samples closer than the debounce to zero are ignored", func() {
			surface.tick(3)
			So(surface.seekCalls(), ShouldBeEmpty)
		})

		Convey("Later samples in the window still skip", func() {
			surface.tick(6)
			So(surface.seekCalls(), ShouldResemble, []float64{20})
		})
	})

	Convey("Given openings are switched off", t, func() {
		toggles := allOn()
		toggles[settings.SkipOpenings] = false
		_, surface, toast := newAttached(1200, toggles)

		surface.tick(90)
		So(surface.seekCalls(), ShouldBeEmpty)
		So(toast.shown(), ShouldBeEmpty)
	})
}

func TestWatcherEnding(t *testing.T) {
	Convey("Given a 1200 second stream", t, func() {
		_, surface, toast := newAttached(1200, allOn())

		Convey("A sample inside the ending seeks one second before the end", func() {
			surface.tick(1150)
			So(surface.seekCalls(), ShouldResemble, []float64{1199})
			So(toast.shown(), ShouldResemble, []string{EndingSkipped})
		})

		Convey("A sample before the ending does nothing", func() {
			surface.tick(1000)
			So(surface.seekCalls(), ShouldBeEmpty)
		})

		Convey("A sample after the ending does nothing", func() {
			surface.tick(1180)
			So(surface.seekCalls(), ShouldBeEmpty)
		})
	})

	Convey("Given the duration is unknown", t, func() {
		_, surface, _ := newAttached(0, allOn())

		surface.tick(1150)
		So(surface.seekCalls(), ShouldBeEmpty)
	})

	Convey("Given endings are switched off", t, func() {
		toggles := allOn()
		toggles[settings.SkipEndings] = false
		_, surface, _ := newAttached(1200, toggles)

		surface.tick(1150)
		So(surface.seekCalls(), ShouldBeEmpty)
	})

	Convey("Given a stream shorter than one second", t, func() {
		surface := newFakeSurface(0.5)
		w := New(allOn(), &fakeLocator{surface: surface}, nil, Options{
			Windows: Windows{Opening: Window{Start: 500, End: 600}, Ending: Window{Start: -1, End: 0}, EndingRelative: true},
		})
		w.OnPlaybackStart()

		surface.tick(0.2)
		So(surface.seekCalls(), ShouldResemble, []float64{0})
	})
}

func TestWatcherNotifications(t *testing.T) {
	Convey("Given notifications are switched off", t, func() {
		toggles := allOn()
		toggles[settings.ShowNotifications] = false
		_, surface, toast := newAttached(1200, toggles)

		Convey("The seek still happens silently", func() {
			surface.tick(90)
			So(surface.seekCalls(), ShouldResemble, []float64{105})
			So(toast.shown(), ShouldBeEmpty)
		})
	})

	Convey("Given the seek is rejected", t, func() {
		_, surface, toast := newAttached(1200, allOn())
		surface.seekErr = errSeek

		surface.tick(90)
		So(toast.shown(), ShouldBeEmpty)

		Convey("The debounce is not armed by the failure", func() {
			surface.seekErr = nil
			surface.tick(92)
			So(surface.seekCalls(), ShouldResemble, []float64{105})
		})
	})
}

func TestWatcherLifecycle(t *testing.T) {
	Convey("Given a disabled watcher", t, func() {
		toggles := allOn()
		toggles[settings.Enabled] = false
		w, surface, _ := newAttached(1200, toggles)

		So(w.State(), ShouldEqual, Detached)
		So(surface.listeners(), ShouldEqual, 0)
	})

	Convey("Given no surface is available", t, func() {
		w := New(allOn(), &fakeLocator{}, &fakeToast{}, Options{})
		w.OnPlaybackStart()
		So(w.State(), ShouldEqual, Detached)

		Convey("CheckSkip is a no-op", func() {
			So(func() { w.CheckSkip() }, ShouldNotPanic)
		})
	})

	Convey("Given an attached watcher that is stopped", t, func() {
		w, surface, toast := newAttached(1200, allOn())
		w.OnPlaybackStop()

		So(w.State(), ShouldEqual, Detached)
		So(surface.listeners(), ShouldEqual, 0)

		Convey("Later samples never mutate playback", func() {
			surface.tick(90)
			surface.tick(1150)
			So(surface.seekCalls(), ShouldBeEmpty)
			So(toast.shown(), ShouldBeEmpty)
		})

		Convey("Stopping again is harmless", func() {
			So(func() { w.OnPlaybackStop() }, ShouldNotPanic)
			So(surface.cancels, ShouldEqual, 1)
		})
	})

	Convey("Given a stale callback captured before stop", t, func() {
		w, surface, _ := newAttached(1200, allOn())
		var stale func()
		for _, fn := range surface.callbacks {
			stale = fn
		}
		w.OnPlaybackStop()

		surface.position = 90
		stale()
		So(surface.seekCalls(), ShouldBeEmpty)
	})

	Convey("Given playback starts twice", t, func() {
		w, surface, _ := newAttached(1200, allOn())
		w.OnPlaybackStart()

		So(surface.listeners(), ShouldEqual, 1)
		So(surface.cancels, ShouldEqual, 1)

		Convey("The debounce restarts from zero", func() {
			surface.tick(90)
			So(surface.seekCalls(), ShouldResemble, []float64{105})
		})
	})

	Convey("Given a bound watcher", t, func() {
		bus := &fakeBus{}
		surface := newFakeSurface(1200)
		var attached Windows
		w := New(allOn(), &fakeLocator{surface: surface}, &fakeToast{}, Options{
			OnAttach: func(_ Surface, ws Windows) { attached = ws },
		})
		w.Bind(bus)

		bus.start()
		So(w.State(), ShouldEqual, Attached)
		So(attached, ShouldResemble, DefaultWindows())

		bus.stop()
		So(w.State(), ShouldEqual, Detached)
	})
}

func TestWatcherOverlappingWindows(t *testing.T) {
	Convey("Given a 120 second stream whose opening and ending overlap", t, func() {
		// Ending resolves to [30, 90], the opening is [85, 105].
		w, surface, toast := newAttached(120, allOn())
		So(w.State(), ShouldEqual, Attached)

		Convey("A sample in both windows fires both rules in order", func() {
			surface.tick(88)
			So(surface.seekCalls(), ShouldResemble, []float64{105, 119})
			So(toast.shown(), ShouldResemble, []string{OpeningSkipped, EndingSkipped})
		})
	})
}
