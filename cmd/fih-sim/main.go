// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/f-secure-foundry/armory-fih/internal/sim"
)

type Config struct {
	config   string
	programs string
	faults   int
	output   string
	report   string
	trace    bool
	verbose  bool
}

var conf *Config

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stdout)

	conf = &Config{}

	flag.Usage = func() {
		fmt.Print(usage)
	}

	flag.StringVar(&conf.config, "c", "", "campaign configuration (TOML)")
	flag.StringVar(&conf.programs, "p", "", "comma separated programs")
	flag.IntVar(&conf.faults, "n", 0, "faults per attack")
	flag.StringVar(&conf.output, "o", "", "report output file")
	flag.StringVar(&conf.report, "r", "", "print a report file and exit")
	flag.BoolVar(&conf.trace, "t", false, "print the negative path trace")
	flag.BoolVar(&conf.verbose, "v", false, "list every successful attack")
}

func main() {
	flag.Parse()

	log.Println(welcome)

	if conf.report != "" {
		if err := show(conf.report); err != nil {
			log.Fatal(err)
		}

		return
	}

	campaign, err := configure()

	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	campaigns, err := campaign.Campaigns()

	if err != nil {
		log.Fatal(err)
	}

	var results []*sim.Result

	for _, c := range campaigns {
		log.Printf("\n%s: %d instructions, up to %d faults per attack", c.Program.Name, len(c.Program.Code), c.MaxFaults)

		r, err := c.Run(ctx)

		if err != nil {
			log.Fatal(err)
		}

		summary(c.Program, r)
		results = append(results, r)
	}

	if campaign.Report == "" {
		return
	}

	if err = ioutil.WriteFile(campaign.Report, sim.MarshalResults(results), 0600); err != nil {
		log.Fatal(err)
	}

	log.Printf("\nreport written to %s", campaign.Report)
}

func configure() (c *sim.Config, err error) {
	if conf.config != "" {
		if c, err = sim.LoadConfig(conf.config); err != nil {
			return
		}
	} else {
		c = sim.DefaultConfig()
	}

	if conf.programs != "" {
		c.Programs = strings.Split(conf.programs, ",")
	}

	if conf.faults != 0 {
		c.MaxFaults = conf.faults
	}

	if conf.output != "" {
		c.Report = conf.output
	}

	return c, c.Validate()
}

func summary(p *sim.Program, r *sim.Result) {
	if conf.trace && p != nil {
		for _, rec := range r.Trace {
			if int(rec.Addr) >= len(p.Code) {
				continue
			}

			log.Printf("  %4d x%-3d %s", rec.Addr, rec.Count, p.Code[rec.Addr])
		}
	}

	log.Printf("  runs            : %d", r.Runs)
	log.Printf("  single attacks  : %d", r.Count(1))
	log.Printf("  double attacks  : %d", r.Count(2))

	if !conf.verbose {
		return
	}

	for _, a := range r.Attacks {
		log.Printf("  attack: %s", a)
	}
}

func show(path string) error {
	buf, err := ioutil.ReadFile(path)

	if err != nil {
		return err
	}

	results, err := sim.UnmarshalResults(buf)

	if err != nil {
		return fmt.Errorf("invalid report, %v", err)
	}

	for _, r := range results {
		log.Printf("\n%s", r.Program)

		p, _ := sim.Lookup(r.Program)
		summary(p, r)
	}

	return nil
}
