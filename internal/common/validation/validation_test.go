package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateKeyword(t *testing.T) {
	assert.NoError(t, ValidateKeyword("!enter"))
	assert.NoError(t, ValidateKeyword("  !enter  "))

	assert.Error(t, ValidateKeyword(""))
	assert.Error(t, ValidateKeyword("   "))
	assert.Error(t, ValidateKeyword("two words"))
	assert.Error(t, ValidateKeyword(strings.Repeat("x", MaxKeywordLength+1)))
}

func TestValidatePrize(t *testing.T) {
	assert.NoError(t, ValidatePrize(""))
	assert.NoError(t, ValidatePrize("Steam gift card"))
	assert.Error(t, ValidatePrize(strings.Repeat("x", MaxPrizeLength+1)))
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("alice"))
	assert.NoError(t, ValidateUsername("@alice_123"))

	assert.Error(t, ValidateUsername(""))
	assert.Error(t, ValidateUsername("@"))
	assert.Error(t, ValidateUsername("has space"))
	assert.Error(t, ValidateUsername(strings.Repeat("a", MaxUsernameLength+1)))
}
