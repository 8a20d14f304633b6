package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_Resolve(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"resolve", "neg", "StrictlyNegativeFinite"}, &stdout, &stderr)

	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "neg StrictlyNegativeFinite -> StrictlyPositiveFinite")
}

func TestRun_UnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"frobnicate"}, &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr.String(), "unknown command")
}

func TestRun_CommandError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"resolve", "pow", "NonNaN", "NonNaN"}, &stdout, &stderr)

	assert.Equal(t, 2, code)
	assert.Contains(t, stdout.String(), "E010")
}
