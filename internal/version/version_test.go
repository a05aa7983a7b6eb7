package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionFormat(t *testing.T) {
	parts := strings.Split(Version, ".")
	assert.Len(t, parts, 3)
	for _, part := range parts {
		assert.NotEmpty(t, part)
	}
}

func TestUserAgent(t *testing.T) {
	assert.Equal(t, "issueql/"+Version, UserAgent())
}

func TestRevisionDoesNotPanic(t *testing.T) {
	// Revision may be empty under "go test", it must just not fail.
	_ = Revision()
}
