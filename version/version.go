// Package version checks for newer releases of autoskip.
package version

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/autoskip-cli/autoskip/filesystem"
	"github.com/autoskip-cli/autoskip/network"
	"github.com/autoskip-cli/autoskip/util"
	"github.com/autoskip-cli/autoskip/where"
	"github.com/metafates/gache"
)

// ReleasesURL is queried for the latest release tag.
var ReleasesURL = "https://api.github.com/repos/autoskip-cli/autoskip/releases/latest"

var (
	cacherOnce sync.Once
	cacher     *gache.Cache[string]
)

// versionCacher keeps the latest known version for two days.
func versionCacher() *gache.Cache[string] {
	cacherOnce.Do(func() {
		cacher = gache.New[string](&gache.Options{
			Path:       filepath.Join(where.Cache(), "version.json"),
			Lifetime:   time.Hour * 24 * 2,
			FileSystem: &filesystem.GacheFs{},
		})
	})
	return cacher
}

// Latest returns the newest released version, without the "v" prefix.
func Latest() (string, error) {
	ver, expired, err := versionCacher().Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	resp, err := network.Client.Get(ReleasesURL)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("releases: unexpected status %s", resp.Status)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", err
	}

	if release.TagName == "" {
		return "", errors.New("empty tag name")
	}

	ver = strings.TrimPrefix(release.TagName, "v")
	_ = versionCacher().Set(ver)
	return ver, nil
}
