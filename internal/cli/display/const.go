// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package display

const (
	Tool       = "cirrus"
	BannerBlue = `
   oooooo    ooo  oooooooo   oooooooo   oo    oo
 0oo     o0o ooo  oo     0o  oo     0o  oo    oo
ooo          ooo  oo     oo  oo     oo  oo    oo
ooo          ooo  oooooo0o   oooooo0o   oo    oo
ooo          ooo  oo    oo   oo    oo   oo    oo
 0oo     o0o ooo  oo     oo  oo     oo  0o    o0
   oooooo    ooo  oo     oo  oo     oo   oooooo
`
	BannerGold = `
  oooo
0o    0o
oo
 0oooo
     0oo
0o    oo
 0oooo      vversion
`
	DocRoot = "https://docs.opsfabric.dev/cirrus/latest"
)
