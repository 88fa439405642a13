package utils

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinnerDisabled(t *testing.T) {
	var buf bytes.Buffer
	s := StartSpinner(&buf, "Linting", false)
	assert.Nil(t, s.bar)

	s.Stop()
	s.Stop()
	assert.Empty(t, buf.String())
}

func TestSpinnerEnabled(t *testing.T) {
	var buf bytes.Buffer
	s := StartSpinner(&buf, "Linting", true)
	assert.NotNil(t, s.bar)

	time.Sleep(250 * time.Millisecond)
	s.Stop()
	s.Stop()
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
