package player

import (
	"sort"

	"github.com/autoskip-cli/autoskip/skip"
	"github.com/samber/lo"
)

// Chapter is one entry of mpv's chapter-list property.
type Chapter struct {
	Title string  `json:"title"`
	Time  float64 `json:"time"`
}

// Chapters lays the opening and ending windows out as timeline markers.
// A relative ending is only marked once the duration is known.
func Chapters(w skip.Windows, duration float64, known bool) []Chapter {
	var chapters []Chapter

	if w.Opening.Start <= w.Opening.End {
		chapters = append(chapters,
			Chapter{Title: "Opening", Time: w.Opening.Start},
			Chapter{Title: "Main", Time: w.Opening.End},
		)
	}

	if ending, ok := w.ResolveEnding(duration, known); ok && ending.Start <= ending.End {
		chapters = append(chapters,
			Chapter{Title: "Ending", Time: ending.Start},
			Chapter{Title: "Preview", Time: ending.End},
		)
	}

	chapters = lo.Filter(chapters, func(c Chapter, _ int) bool {
		return c.Time >= 0 && (!known || c.Time <= duration)
	})
	if len(chapters) == 0 {
		return nil
	}

	// mpv expects chapters in playback order.
	sort.SliceStable(chapters, func(i, j int) bool { return chapters[i].Time < chapters[j].Time })

	if chapters[0].Time > 0 {
		chapters = append([]Chapter{{Title: "Intro", Time: 0}}, chapters...)
	}

	return chapters
}

// SetChapters replaces the chapter markers of the current file.
func (m *MPV) SetChapters(chapters []Chapter) error {
	_, err := m.sendCommand("set_property", "chapter-list", chapters)
	return err
}

// ChapterCount returns how many chapters the current file carries.
func (m *MPV) ChapterCount() (int, error) {
	n, err := m.floatProperty("chapters")
	return int(n), err
}
