package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/stamp/internal/utils"
)

const storedConfigurationFilePathConstant = "/tmp/config.yaml"

func TestCommandContextAccessorRoundTripsConfigurationFilePath(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	updatedContext := accessor.WithConfigurationFilePath(context.Background(), storedConfigurationFilePathConstant)
	storedPath, pathStored := accessor.ConfigurationFilePath(updatedContext)
	require.True(testInstance, pathStored)
	require.Equal(testInstance, storedConfigurationFilePathConstant, storedPath)
}

func TestCommandContextAccessorReportsMissingConfigurationFilePath(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	storedPath, pathStored := accessor.ConfigurationFilePath(context.Background())
	require.False(testInstance, pathStored)
	require.Empty(testInstance, storedPath)
}
