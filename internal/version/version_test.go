package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3"
	assert.Contains(t, String(), "orghtml version 1.2.3")
	assert.Contains(t, String(), "commit: "+Commit)
}
