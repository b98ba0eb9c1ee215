// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package main

import (
	"github.com/opsfabric/cirrus/internal/cli"
	"github.com/opsfabric/cirrus/internal/logging"
)

func main() {
	logging.SetupInitialLogging()
	cli.Start()
}
