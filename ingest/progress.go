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

package ingest

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// WithProgress wraps r so that every byte read advances a progress bar
// drawn on w. size is the expected byte count, or -1 when unknown (stdin).
// Call the returned finish func once reading is done.
func WithProgress(r io.Reader, size int64, w io.Writer) (io.Reader, func()) {
	bar := progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("📋 Loading bans..."),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintf(w, "\n✅ Ban records loaded\n")
		}),
	)
	return io.TeeReader(r, bar), func() { _ = bar.Finish() }
}
