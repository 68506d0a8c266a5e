package settings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyMergesOnlySetFields(t *testing.T) {
	interval := 60
	sound := false

	merged := Default().Apply(Patch{
		CheckInterval:           &interval,
		PlaySoundOnNotification: &sound,
	})

	require.Equal(t, 60, merged.CheckInterval)
	require.False(t, merged.PlaySoundOnNotification)
	require.Equal(t, Default().DefaultNotificationDuration, merged.DefaultNotificationDuration)
	require.Equal(t, Default().MinimizeToTray, merged.MinimizeToTray)
}

func TestApplyEmptyPatchIsIdentity(t *testing.T) {
	require.Equal(t, Default(), Default().Apply(Patch{}))
}
