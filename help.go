// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"runtime"

	markdown "github.com/MichaelMure/go-term-markdown"
)

func getHelpMessage() string {
	message := fmt.Sprintf(`

 **bantree %s**

Answer "how often, and how recently, was this user banned?" from a ban log, using a self-balancing
search tree built in memory.

Built with Go %s

# 1. Usage
* bantree avl BANFILE [QUERYFILE]
* bantree scapegoat BANFILE [QUERYFILE] --alpha 0.75
* Queries are read from stdin when QUERYFILE is missing or "-"

# 2. Input
* Ban file: one ban per line, "user server timestamp". Quote fields that contain spaces or any of ;&|<>
* Timestamps: unix seconds, RFC 3339, or "YYYY-MM-DD hh:mm:ss" (UTC)
* Query file: one user name per line

# 3. Flags
* --lookup summary|tree: answer from the aggregated summary or by walking the tree
* --strict: stop on the first malformed ban line instead of skipping it
* --progress: show a progress bar while loading bans
* --stats: print timing, tree shape and balancing work to stderr

# 4. Configuration
* Defaults live in ~/.bantree.yaml; run "bantree settings" to create and inspect it

# License
Licensed under the Apache License, Version 2.0

`, version, runtime.Version())
	result := markdown.Render(message, 80, 3)
	return string(result)
}
