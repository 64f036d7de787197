package log

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/autoskip-cli/autoskip/filesystem"
	"github.com/autoskip-cli/autoskip/key"
	"github.com/autoskip-cli/autoskip/where"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)

		Convey("Setup should succeed and stay quiet", func() {
			So(Setup(), ShouldBeNil)
			So(Enabled(), ShouldBeFalse)
			So(func() { Info("dropped") }, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled", t, func() {
		t.Setenv(where.EnvConfigPath, "/cfg")
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		viper.Set(key.LogsJson, false)
		defer viper.Set(key.LogsWrite, false)

		So(Setup(), ShouldBeNil)
		So(Enabled(), ShouldBeTrue)

		Convey("Entries should land in today's file", func() {
			Infof("opening skipped at %d", 90)

			path := filepath.Join("/cfg", "logs", fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
			data, err := filesystem.API().ReadFile(path)
			So(err, ShouldBeNil)
			So(strings.Contains(string(data), "opening skipped at 90"), ShouldBeTrue)
		})
	})
}
