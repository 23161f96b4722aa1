package styles

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/syntax-framework/basset/cmn"
)

var errorLessCompile = cmn.Err(
	"styles.less",
	"LESS compilation failed", "Binary: %s", "Output: %s", "Caused by: %s",
)

// LessCompiler compiles LESS source, resolving @import against importDir
type LessCompiler interface {
	Compile(src []byte, importDir string) ([]byte, error)
}

// Lessc compiles LESS through the lessc command line compiler
type Lessc struct {
	// Binary is the compiler executable, "lessc" when empty
	Binary string
}

func (l *Lessc) Compile(src []byte, importDir string) ([]byte, error) {
	binary := l.Binary
	if binary == "" {
		binary = "lessc"
	}

	cmd := exec.Command(binary, "--include-path="+importDir, "-")
	cmd.Stdin = bytes.NewReader(src)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		return nil, errorLessCompile(binary, strings.TrimSpace(stderr.String()), err)
	}
	return stdout.Bytes(), nil
}
