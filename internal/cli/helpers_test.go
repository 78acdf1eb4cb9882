package cli_test

import (
	"bytes"
	"testing"

	"github.com/rshade/offsetcalc/internal/cli"
)

// cerealArgs describe 10 ha of cereal crops in poor condition from the
// embedded dataset.
//
//nolint:gochecknoglobals // Shared read-only fixture.
var cerealArgs = []string{
	"--habitat", "farmland",
	"--distinct-subtype", "Cereal crops",
	"--carbon-subtype", "Arable / cultivated land",
	"--size", "10",
	"--condition", "1",
}

// setupCLITest isolates HOME and keeps logging quiet.
func setupCLITest(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OFFSETCALC_LOG_LEVEL", "error")
}

// executeCmd runs the root command with args and returns combined output.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	setupCLITest(t)

	var buf bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func withArgs(base []string, extra ...string) []string {
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}
