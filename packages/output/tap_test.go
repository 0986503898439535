package output

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/specrun/packages/core/runner"
)

func TestTAPReporter_Output(t *testing.T) {
	var buf bytes.Buffer
	rep := NewTAPReporter(TAPWithWriter(&buf))

	r, err := runner.NewBuilder().AddReporter(rep).Build()
	require.NoError(t, err)
	_, err = r.Run(context.Background(), sampleTree())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 5)

	assert.Equal(t, "TAP version 13", lines[0])
	assert.Equal(t, "ok 1 - calculator > addition > adds two numbers", lines[1])
	assert.Equal(t, "not ok 2 - calculator > addition > rejects overflow", lines[2])

	out := buf.String()
	assert.Contains(t, out, `error: "overflow not detected"`)
	assert.Contains(t, out, "not ok 3 - calculator > addition > handles floats # TODO pending")
	assert.Contains(t, out, "1..3")
	assert.Contains(t, out, "# failed 1 of 3")
}

func TestTAPReporter_SkippedSpecs(t *testing.T) {
	var buf bytes.Buffer
	rep := NewTAPReporter(TAPWithWriter(&buf))

	r, err := runner.NewBuilder().
		WithTags("never").
		AddReporter(rep).
		Build()
	require.NoError(t, err)
	_, err = r.Run(context.Background(), sampleTree())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "# SKIP")
	assert.NotContains(t, out, "\nnot ok")
	assert.Contains(t, out, "1..3")
}
