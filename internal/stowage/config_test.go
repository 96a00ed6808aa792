package stowage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidateRejectsZeroSumWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RankerWeights = RankerWeights{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}

func TestValidateRejectsNegativeWeight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RankerWeights.Accessibility = -0.1
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}

func TestValidateRejectsNegativeMultiplier(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PriorityMultipliers.Low = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}

func TestValidateRejectsNonPositiveMaxFragmentationBoxes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxFragmentationBoxes = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}

func TestValidateRejectsNegativeExpiryBoostWindow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExpiryBoostWindow = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}

func TestPriorityMultipliersForTier(t *testing.T) {
	pm := DefaultConfig().PriorityMultipliers
	assert.Equal(t, pm.High, pm.forTier(PriorityHigh))
	assert.Equal(t, pm.Medium, pm.forTier(PriorityMedium))
	assert.Equal(t, pm.Low, pm.forTier(PriorityLow))
}

func TestLoadConfigRejectsMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/to/config.yaml")
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}
