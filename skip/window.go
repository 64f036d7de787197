// Package skip implements the skip watcher: it samples playback position on
// every time update and seeks past the opening and ending windows.
package skip

import (
	"fmt"

	"github.com/autoskip-cli/autoskip/key"
	"github.com/spf13/viper"
)

// Window is a closed interval of stream time in seconds.
type Window struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Contains reports whether t lies in [Start, End]. An inverted window contains nothing.
func (w Window) Contains(t float64) bool {
	return w.Start <= w.End && t >= w.Start && t <= w.End
}

// Shift moves both bounds by offset.
func (w Window) Shift(offset float64) Window {
	return Window{Start: w.Start + offset, End: w.End + offset}
}

func (w Window) String() string {
	return fmt.Sprintf("[%g, %g]", w.Start, w.End)
}

// Windows is the opening/ending pair checked on every sample.
// With EndingRelative set, Ending holds offsets from the end of the stream.
type Windows struct {
	Opening        Window `json:"opening"`
	Ending         Window `json:"ending"`
	EndingRelative bool   `json:"ending_relative"`
}

// DefaultWindows returns the classic 85-105s opening and the last 90-30s of the stream as ending.
func DefaultWindows() Windows {
	return Windows{
		Opening:        Window{Start: 85, End: 105},
		Ending:         Window{Start: -90, End: -30},
		EndingRelative: true,
	}
}

// WindowsFromConfig reads the windows from the viper configuration.
func WindowsFromConfig() Windows {
	return Windows{
		Opening: Window{
			Start: viper.GetFloat64(key.SkipOpeningStart),
			End:   viper.GetFloat64(key.SkipOpeningEnd),
		},
		Ending: Window{
			Start: viper.GetFloat64(key.SkipEndingStart),
			End:   viper.GetFloat64(key.SkipEndingEnd),
		},
		EndingRelative: viper.GetBool(key.SkipEndingRelative),
	}
}

// ResolveEnding returns the ending window in absolute stream time.
// A relative window cannot be resolved without a known duration.
func (w Windows) ResolveEnding(duration float64, known bool) (Window, bool) {
	if !w.EndingRelative {
		return w.Ending, true
	}
	if !known {
		return Window{}, false
	}
	return w.Ending.Shift(duration), true
}
