// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package decode

import (
	"bufio"
	"errors"
	"io"
	"syscall"
)

// DefaultChunkSize is the number of bytes requested from the underlying
// source per read, if [Options.ChunkSize] is not set.
const DefaultChunkSize = 1024

// maxEmptyReads is the number of consecutive (0, nil) reads tolerated before
// giving up with [io.ErrNoProgress].
const maxEmptyReads = 100

// Options configures a [Decoder] or a [Lossy] decoder.
//
// The zero value is ready to use.
type Options struct {
	// The number of bytes to read from the source at a time.
	//
	// Default is DefaultChunkSize.
	ChunkSize int
}

func (o Options) chunkSize() int {
	if o.ChunkSize < 0 {
		panic("parsec/decode: ChunkSize < 0")
	}
	if o.ChunkSize == 0 {
		return DefaultChunkSize
	}
	return o.ChunkSize
}

// newReader wraps r in a chunked byte reader that retries interrupted reads.
func newReader(r io.Reader, o Options) *bufio.Reader {
	return bufio.NewReaderSize(retrying{r}, o.chunkSize())
}

// retrying is an [io.Reader] that hides transient read conditions from
// its caller: reads interrupted by a signal and reads which return neither
// data nor an error are simply issued again.
type retrying struct {
	r io.Reader
}

func (r retrying) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	empty := 0
	for {
		n, err := r.r.Read(p)
		interrupted := errors.Is(err, syscall.EINTR)
		switch {
		case n > 0:
			if interrupted {
				err = nil
			}
			return n, err
		case interrupted:
			continue
		case err != nil:
			return 0, err
		}

		empty++
		if empty == maxEmptyReads {
			return 0, io.ErrNoProgress
		}
	}
}
