package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// FFmpegStub answers -version and "encodes" by writing the first half of the
// -i input to the last argument.
const FFmpegStub = `#!/bin/sh
if [ "$1" = "-version" ]; then
  echo "ffmpeg version 6.1-stub Copyright (c) the FFmpeg developers"
  exit 0
fi
in=""
out=""
while [ $# -gt 0 ]; do
  if [ "$1" = "-i" ]; then
    in="$2"
    shift
  fi
  out="$1"
  shift
done
size=$(wc -c < "$in")
head -c $((size / 2)) "$in" > "$out"
`

// FFmpegFailingStub passes the version query but fails every encode with a
// diagnostic on stderr.
const FFmpegFailingStub = `#!/bin/sh
if [ "$1" = "-version" ]; then
  echo "ffmpeg version 6.1-stub"
  exit 0
fi
echo "Invalid data found when processing input" >&2
exit 1
`

// FFmpegBrokenStub fails the version query.
const FFmpegBrokenStub = `#!/bin/sh
echo "error while loading shared libraries: libx264.so" >&2
exit 127
`

// StubBinary writes an executable shell script named name into dir and
// returns its path.
func StubBinary(t testing.TB, dir, name, script string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	target := filepath.Join(dir, name)
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}
