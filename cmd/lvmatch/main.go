// SPDX-License-Identifier: MIT
// Command lvmatch pairs two groups of agents from ranked preference files.
//
//	lvmatch solve women.txt men.txt -m deferred_acceptance -n 1000 -b blacklist.txt
//	lvmatch solve women.txt men.txt -m weighted_assignment --weight 0.6
//	lvmatch generate --agents 20 --completeness 0.3 --out ./fixture
//	lvmatch runs list --db runs.db
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
