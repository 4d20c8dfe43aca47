package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidStatus(t *testing.T) {
	for _, s := range CampaignStatuses {
		require.True(t, ValidStatus(s), "status %q should be valid", s)
	}
	require.False(t, ValidStatus("archived"))
	require.False(t, ValidStatus(""))
}

func TestNextStatusCycles(t *testing.T) {
	require.Equal(t, StatusActive, NextStatus(StatusDraft))
	require.Equal(t, StatusPaused, NextStatus(StatusActive))
	require.Equal(t, StatusCompleted, NextStatus(StatusPaused))
	require.Equal(t, StatusDraft, NextStatus(StatusCompleted))
}

func TestNextStatusUnknownRestartsAtDraft(t *testing.T) {
	require.Equal(t, StatusDraft, NextStatus("bogus"))
	require.Equal(t, StatusDraft, NextStatus(""))
}

func TestValidAssetType(t *testing.T) {
	for _, v := range AssetTypes {
		require.True(t, ValidAssetType(v), "type %q should be valid", v)
	}
	require.False(t, ValidAssetType("video"))
}

func TestPageHasNext(t *testing.T) {
	p := Page[Campaign]{Total: 12, Page: 2, Limit: 5}
	require.True(t, p.HasNext())
	require.True(t, p.HasPrev())

	last := Page[Campaign]{Total: 12, Page: 3, Limit: 5}
	require.False(t, last.HasNext())

	first := Page[Campaign]{Total: 12, Page: 1, Limit: 5}
	require.False(t, first.HasPrev())

	empty := Page[Campaign]{}
	require.False(t, empty.HasNext())
	require.False(t, empty.HasPrev())
}
