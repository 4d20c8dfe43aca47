package tui

import (
	"strings"
	"testing"

	"github.com/evoss/adloom/pkg/domain"
)

func TestStatusStyleKnownAndUnknown(t *testing.T) {
	for _, status := range domain.CampaignStatuses {
		if _, ok := statusColors[status]; !ok {
			t.Errorf("no color mapped for status %q", status)
		}
	}
	// Unknown statuses fall back to the dim style instead of panicking.
	if got := StatusStyle("archived").Render("archived"); !strings.Contains(got, "archived") {
		t.Errorf("fallback style mangled text: %q", got)
	}
}

func TestTypeStyleCoversAllAssetTypes(t *testing.T) {
	for _, assetType := range domain.AssetTypes {
		if _, ok := typeColors[assetType]; !ok {
			t.Errorf("no color mapped for asset type %q", assetType)
		}
	}
}

func TestRenderShimmerLogoContainsLetters(t *testing.T) {
	logo := renderShimmerLogo(0)
	for _, r := range logoText {
		if !strings.Contains(logo, string(r)) {
			t.Errorf("logo missing letter %q:\n%s", r, logo)
		}
	}
}

func TestClampByte(t *testing.T) {
	if got := clampByte(-5); got != 0 {
		t.Errorf("clampByte(-5) = %d", got)
	}
	if got := clampByte(300); got != 255 {
		t.Errorf("clampByte(300) = %d", got)
	}
	if got := clampByte(128); got != 128 {
		t.Errorf("clampByte(128) = %d", got)
	}
}

func TestHexToRGB(t *testing.T) {
	r, g, b := hexToRGB("#2dd4bf")
	if r != 0x2d || g != 0xd4 || b != 0xbf {
		t.Errorf("hexToRGB = %d,%d,%d", r, g, b)
	}
	r, g, b = hexToRGB("bogus")
	if r != 255 || g != 255 || b != 255 {
		t.Errorf("expected white fallback, got %d,%d,%d", r, g, b)
	}
}
