package splitter

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultOutputDirName is the directory created next to each input when no
// output directory is configured.
const DefaultOutputDirName = "results"

// runnerInfixes stay attached to the extension so outputs keep matching the
// runner's test file globs.
var runnerInfixes = []string{".spec", ".test", ".cy", ".e2e"}

// SplitName separates a file name into the stem and its extension family:
// "login.spec.ts" becomes ("login", ".spec.ts").
func SplitName(filename string) (base, ext string) {
	ext = filepath.Ext(filename)
	base = strings.TrimSuffix(filename, ext)

	lower := strings.ToLower(base)
	for _, infix := range runnerInfixes {
		if strings.HasSuffix(lower, infix) && len(base) > len(infix) {
			return base[:len(base)-len(infix)], base[len(base)-len(infix):] + ext
		}
	}

	return base, ext
}

// OutputName returns the file name of the output holding the test case with
// the given 1-based number.
func OutputName(filename, separator string, number int) string {
	base, ext := SplitName(filename)
	return fmt.Sprintf("%s%s%d%s", base, separator, number, ext)
}

// OutputDir returns the directory the outputs of input are written to.
// Without a configured directory that is "results" next to the input;
// otherwise the input's directory relative to root is mirrored under outDir.
func OutputDir(rootDir, input, outDir string) string {
	inputDir := filepath.Dir(input)
	if outDir == "" {
		return filepath.Join(inputDir, DefaultOutputDirName)
	}

	rel, err := filepath.Rel(rootDir, inputDir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return outDir
	}
	return filepath.Join(outDir, rel)
}
