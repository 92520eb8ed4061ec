package fan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOnOff(t *testing.T) {
	for text, expected := range map[string]bool{"on": true, "off": false, "true": true, "0": false, "enable": true} {
		// WHEN
		value, err := parseOnOff(text)

		// THEN
		assert.NoError(t, err)
		assert.Equal(t, expected, value, text)
	}

	// WHEN
	_, err := parseOnOff("maybe")

	// THEN
	assert.Error(t, err)
}
