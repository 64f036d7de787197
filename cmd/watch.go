package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/autoskip-cli/autoskip/config"
	"github.com/autoskip-cli/autoskip/constant"
	"github.com/autoskip-cli/autoskip/key"
	"github.com/autoskip-cli/autoskip/log"
	"github.com/autoskip-cli/autoskip/notify"
	"github.com/autoskip-cli/autoskip/player"
	"github.com/autoskip-cli/autoskip/settings"
	"github.com/autoskip-cli/autoskip/skip"
	"github.com/autoskip-cli/autoskip/storage"
	"github.com/spf13/viper"
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func openSettings() *settings.Store {
	return settings.Open(storage.Default(), viper.GetString(key.SettingsStorageKey))
}

// toastFor builds the notification chain: mpv OSD, then a terminal banner, then stderr.
func toastFor(session *player.Session) *notify.Chain {
	var banner notify.Sink
	if viper.GetBool(key.NotifyBanner) {
		banner = &notify.Banner{W: os.Stderr, Hold: config.Millis(key.NotifyOSDDuration)}
	}
	return notify.NewChain(session, banner, &notify.Alert{W: os.Stderr})
}

// watch runs the skip watcher against p until mpv goes away or ctx is cancelled.
// With autoStart off the watcher is only bound when force is set.
func watch(ctx context.Context, p player.Player, force bool) error {
	store := openSettings()
	session := player.NewSession(p)

	opts := skip.Options{
		Windows:  skip.WindowsFromConfig(),
		Debounce: viper.GetFloat64(key.SkipDebounce),
	}
	if viper.GetBool(key.SkipChapters) {
		opts.OnAttach = func(_ skip.Surface, w skip.Windows) { session.PublishChapters(w) }
	}

	watcher := skip.New(store, session, toastFor(session), opts)

	snapshot := store.Snapshot()
	switch {
	case !snapshot.Enabled:
		log.Info("autoskip is disabled, watching without skipping")
		fmt.Fprintf(os.Stderr, "%s is disabled. Run `%s settings` to enable it.\n", constant.PluginName, constant.Autoskip)
	case snapshot.AutoStart || force:
		watcher.Bind(session)
		log.Info("autoskip started")
	default:
		log.Info("autoStart is off, pass --start to skip in this session")
		fmt.Fprintf(os.Stderr, "autoStart is off. Pass --start to skip in this session.\n")
	}

	if err := session.Start(); err != nil {
		log.Errorf("failed to reach mpv: %v", err)
		return fmt.Errorf("listen to mpv: %w", err)
	}
	log.Infof("%s %s initialized", constant.PluginName, constant.Version)

	defer func() {
		session.Stop()
		watcher.OnPlaybackStop()
	}()

	select {
	case <-ctx.Done():
		log.Info("interrupted")
	case <-p.Wait():
		log.Info("mpv exited")
	case <-session.Done():
		log.Info("mpv connection closed")
	}

	return nil
}
