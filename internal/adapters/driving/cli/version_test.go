package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{"release build", "1.2.0", "whereabouts version 1.2.0\n"},
		{"development build", "dev", "whereabouts version dev\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := version
			SetVersion(tt.version)
			t.Cleanup(func() { version = original })

			out, err := executeCmd(t, "", "version")

			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestVersionCmd_NeedsNoRuntime(t *testing.T) {
	SetRuntime(nil)

	_, err := executeCmd(t, "", "version")

	assert.NoError(t, err)
}
