package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacious-labs/wordfreq-cli/internal/core/domain"
	"github.com/spacious-labs/wordfreq-cli/internal/registry"
)

// testRegistry loads a registry where "two" is covered by 2 sources,
// "three" by 3, "five" by 5, and "he" is promoted by override despite a
// single source.
func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	config := `
[overrides]
large = ["he"]

[origins.test]
max_connections = 2
requests_per_second = 1.0

[sources.s1]
languages = ["two", "three", "five", "he"]
full_text = true
origin = "test"

[sources.s2]
languages = ["two", "three", "five"]
full_text = true
origin = "test"

[sources.s3]
languages = ["three", "five"]
full_text = true
origin = "test"

[sources.s4]
languages = ["five"]
full_text = true
origin = "test"

[sources.s5]
languages = ["five"]
full_text = false
origin = "test"
`
	path := filepath.Join(t.TempDir(), "sources.toml")
	require.NoError(t, os.WriteFile(path, []byte(config), 0600))

	reg, err := registry.LoadFile(path)
	require.NoError(t, err)
	return reg
}

func TestAvailability_Classify(t *testing.T) {
	avail := NewAvailability(testRegistry(t))

	tests := []struct {
		name string
		lang domain.LanguageCode
		want domain.SupportLevel
	}{
		{"two sources is unsupported", "two", domain.Unsupported},
		{"three sources is supported", "three", domain.Supported},
		{"five sources is large", "five", domain.Large},
		{"undeclared is unsupported", "xx", domain.Unsupported},
		{"override promotes regardless of count", "he", domain.Large},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, avail.Classify(tt.lang))
		})
	}
}

func TestAvailability_SupportedLanguages(t *testing.T) {
	avail := NewAvailability(testRegistry(t))

	supported := avail.SupportedLanguages()

	assert.Equal(t, []domain.LanguageCode{"five", "he", "three"}, supported)
}

func TestAvailability_LargeLanguages(t *testing.T) {
	avail := NewAvailability(testRegistry(t))

	large := avail.LargeLanguages()

	assert.Equal(t, []domain.LanguageCode{"five", "he"}, large)
}
