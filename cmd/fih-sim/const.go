// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package main

const usage = `Usage: fih-sim [OPTIONS]
  -h    show this help

  -c string
        campaign configuration (TOML)
  -p string
        comma separated programs, overrides the configuration
  -n int
        faults per attack, overrides the configuration
  -o string
        report output file, overrides the configuration
  -r string
        print a report file and exit
  -t    print the negative path trace of each program
  -v    list every successful attack
`

const welcome = `armory-fih fault injection simulator`
