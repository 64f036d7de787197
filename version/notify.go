package version

import (
	"fmt"

	"github.com/autoskip-cli/autoskip/color"
	"github.com/autoskip-cli/autoskip/constant"
	"github.com/autoskip-cli/autoskip/icon"
	"github.com/autoskip-cli/autoskip/key"
	"github.com/autoskip-cli/autoskip/style"
	"github.com/autoskip-cli/autoskip/util"
	"github.com/spf13/viper"
)

// Notify prints a notice when a newer release exists. Lookup failures are silent.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	version, err := Latest()
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(version, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(version),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/autoskip-cli/autoskip/releases/tag/v"+version),
	)
}
