// Package main is the entry point for autoskip.
package main

import (
	"time"

	"github.com/autoskip-cli/autoskip/cmd"
	"github.com/autoskip-cli/autoskip/config"
	"github.com/autoskip-cli/autoskip/internal/cache"
	"github.com/autoskip-cli/autoskip/log"
	"github.com/autoskip-cli/autoskip/where"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go cache.CollectGarbage(where.Logs(), cache.TTL, time.Now())

	cmd.Execute()
}
