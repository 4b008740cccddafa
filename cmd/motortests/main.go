// Command motortests is the argument-driven test harness: no argument or
// "all" runs every registered scenario, a single name runs one.
/*
 * Copyright 2026, Ember Systems Contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */
package main

import (
	"fmt"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/ember-systems/motordriver/harness"
	_ "github.com/ember-systems/motordriver/harness/scenarios"
)

func main() {
	optList := getopt.BoolLong("list", 'l', "List registered scenario names")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	if *optList {
		for _, name := range harness.Names() {
			fmt.Println(name)
		}
		return
	}

	args := getopt.Args()
	name := "all"
	if len(args) > 0 {
		name = args[0]
	}

	if name == "all" {
		failures := harness.RunAll()
		if len(failures) == 0 {
			fmt.Println("all scenarios passed")
			return
		}
		for _, n := range harness.Names() {
			if err, failed := failures[n]; failed {
				fmt.Printf("FAIL %s: %v\n", n, err)
			}
		}
		os.Exit(1)
	}

	if err := harness.Run(name); err != nil {
		fmt.Printf("FAIL %s: %v\n", name, err)
		os.Exit(1)
	}
	fmt.Printf("PASS %s\n", name)
}
