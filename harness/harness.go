// Package harness is a named-scenario registry for the test binary, in the
// init()-time self-registration idiom used elsewhere in this codebase for
// pluggable components: scenarios register themselves by name from an
// init() function, and the test binary looks them up by name instead of
// switching on a hardcoded list.
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
package harness

import (
	"fmt"
	"sort"
)

// Scenario is a single named end-to-end check. It returns an error
// describing the first failure, or nil on success.
type Scenario func() error

var scenarios = map[string]Scenario{}

// Register should be called from an init() function.
func Register(name string, fn Scenario) {
	if _, exists := scenarios[name]; exists {
		panic(fmt.Sprintf("harness: scenario %q already registered", name))
	}
	scenarios[name] = fn
}

// Names returns every registered scenario name, sorted.
func Names() []string {
	names := make([]string, 0, len(scenarios))
	for n := range scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Run executes one named scenario and returns its error, or an error if
// the name is not registered.
func Run(name string) error {
	fn, ok := scenarios[name]
	if !ok {
		return fmt.Errorf("unknown scenario: %s", name)
	}
	return fn()
}

// RunAll executes every registered scenario in name order and returns a
// map from scenario name to failure, for scenarios that failed.
func RunAll() map[string]error {
	failures := map[string]error{}
	for _, name := range Names() {
		if err := scenarios[name](); err != nil {
			failures[name] = err
		}
	}
	return failures
}
