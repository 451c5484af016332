package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "v1.2.3", Normalize("1.2.3"))
	assert.Equal(t, "v1.2.3", Normalize(" v1.2.3 "))
	assert.Equal(t, "", Normalize(""))
}

func TestString(t *testing.T) {
	orig := Current
	t.Cleanup(func() { Current = orig })

	Current = "1.4"
	assert.Equal(t, "v1.4.0", String())

	Current = "dev"
	assert.Equal(t, "dev", String())
}
