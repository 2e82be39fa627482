package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMessageStatus(t *testing.T) {
	require.Equal(t, StatusDelivered, ParseMessageStatus("DELIVERED"))
	require.Equal(t, StatusDelivered, ParseMessageStatus("delivered"))
	require.Equal(t, StatusPayloadStored, ParseMessageStatus("payload_stored"))
	require.Equal(t, StatusInflight, ParseMessageStatus(""))
	require.Equal(t, MessageStatus("SOMETHING_NEW"), ParseMessageStatus("something_new"))
}

func TestMessageStatusTerminal(t *testing.T) {
	terminal := []MessageStatus{
		StatusDelivered, StatusFailed, StatusBlocked, StatusApplicationBurned,
		StatusApplicationSkipped, StatusUnresolvableCommand, StatusMalformedCommand,
	}
	for _, s := range terminal {
		require.True(t, s.Terminal(), "%s should be terminal", s)
		require.False(t, s.Open(), "%s should not be open", s)
	}

	open := []MessageStatus{StatusConfirming, StatusInflight, StatusPayloadStored}
	for _, s := range open {
		require.False(t, s.Terminal(), "%s should not be terminal", s)
		require.True(t, s.Open(), "%s should be open", s)
	}
}

func TestMessageStatusRankProgression(t *testing.T) {
	require.Less(t, StatusConfirming.Rank(), StatusInflight.Rank())
	require.Less(t, StatusInflight.Rank(), StatusPayloadStored.Rank())
	require.Less(t, StatusPayloadStored.Rank(), StatusDelivered.Rank())
	require.Equal(t, StatusDelivered.Rank(), StatusFailed.Rank())
	require.Equal(t, 0, MessageStatus("SOMETHING_NEW").Rank())
}

func TestMessageStatusLabels(t *testing.T) {
	require.Equal(t, "View Scan", StatusDelivered.Label())
	require.Equal(t, "In Flight", StatusInflight.Label())
	require.Equal(t, "Processing", MessageStatus("SOMETHING_NEW").Label())
	require.Equal(t, "Transaction completed successfully", StatusDelivered.Detail())
	require.Equal(t, "Transaction processing", MessageStatus("SOMETHING_NEW").Detail())
}
