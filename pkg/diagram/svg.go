package diagram

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mxvane/statecraft/pkg/model"
)

// ExportSVG renders sm as an SVG image by piping ExportDOT's output
// through the local Graphviz "dot" binary. It returns an error if
// Graphviz is not installed or the conversion fails.
func ExportSVG(sm *model.StateMachine, options ...DOTOptions) (string, error) {
	dotSource := ExportDOT(sm, options...)

	cmd := exec.Command("dot", "-Tsvg")
	cmd.Stdin = strings.NewReader(dotSource)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("diagram: render svg via graphviz: %w (is graphviz installed?)", err)
	}

	return out.String(), nil
}
