package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/evoss/adloom/pkg/domain"
)

func newTestAssetsModel() assetsModel {
	m := newAssetsModel(newTestClient("tok"))
	m.width = 80
	m.height = 24
	return m
}

func assetsPage(total, pageNum, limit int, items ...domain.Asset) *domain.Page[domain.Asset] {
	return &domain.Page[domain.Asset]{Items: items, Total: total, Page: pageNum, Limit: limit}
}

func TestAssetsWithFilterResetsState(t *testing.T) {
	m := newTestAssetsModel()
	m.pageNum = 3
	m.cursor = 4
	m.mode = assetsDetail
	asset := makeTestAsset(1, "Old", domain.AssetAdCopy, 2)
	m.detail = &asset

	m = m.withFilter(7, "Launch Week")
	if m.campaignID != 7 || m.campaignName != "Launch Week" {
		t.Errorf("unexpected filter: %d %q", m.campaignID, m.campaignName)
	}
	if m.pageNum != 1 || m.cursor != 0 || m.mode != assetsList || m.detail != nil {
		t.Error("expected paging and detail reset by withFilter")
	}
}

func TestAssetsListRendersVersionBadge(t *testing.T) {
	m := newTestAssetsModel()
	m, _ = m.Update(assetsLoadedMsg{page: assetsPage(2, 1, 20,
		makeTestAsset(1, "Hero headline", domain.AssetAdCopy, 3),
		makeTestAsset(2, "Welcome email", domain.AssetEmail, 1),
	)})

	view := m.View()
	if !strings.Contains(view, "Hero headline") {
		t.Errorf("expected asset title in list, got:\n%s", view)
	}
	if !strings.Contains(view, "v3") {
		t.Errorf("expected version badge v3, got:\n%s", view)
	}
	if !strings.Contains(view, domain.AssetEmail) {
		t.Errorf("expected asset type in list, got:\n%s", view)
	}
}

func TestAssetsFilteredHeaderShowsCampaign(t *testing.T) {
	m := newTestAssetsModel().withFilter(7, "Launch Week")
	m, _ = m.Update(assetsLoadedMsg{page: assetsPage(1, 1, 20,
		makeTestAsset(1, "Hero headline", domain.AssetAdCopy, 1),
	)})
	if !strings.Contains(m.View(), "Launch Week") {
		t.Errorf("expected campaign name in header, got:\n%s", m.View())
	}
}

func TestAssetsEmptyState(t *testing.T) {
	m := newTestAssetsModel()
	m, _ = m.Update(assetsLoadedMsg{page: assetsPage(0, 1, 20)})
	if !strings.Contains(m.View(), "no assets yet") {
		t.Errorf("expected empty state, got:\n%s", m.View())
	}
}

func TestAssetsCreateRequiresCampaignFilter(t *testing.T) {
	m := newTestAssetsModel()
	m, _ = m.Update(assetsLoadedMsg{page: assetsPage(0, 1, 20)})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if m.mode == assetsCreate {
		t.Fatal("expected create blocked without campaign filter")
	}
	if !strings.Contains(m.View(), "open a campaign first") {
		t.Errorf("expected hint in view, got:\n%s", m.View())
	}

	m = m.withFilter(7, "Launch Week")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if m.mode != assetsCreate {
		t.Error("expected create mode with campaign filter")
	}
}

func TestAssetsEnterOpensDetail(t *testing.T) {
	m := newTestAssetsModel()
	m, _ = m.Update(assetsLoadedMsg{page: assetsPage(1, 1, 20,
		makeTestAsset(1, "Hero headline", domain.AssetAdCopy, 2),
	)})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != assetsDetail || m.detail == nil {
		t.Fatal("expected detail mode after enter")
	}
	view := m.View()
	if !strings.Contains(view, "Hero headline") {
		t.Errorf("expected title in detail, got:\n%s", view)
	}
	if !strings.Contains(view, "v2") {
		t.Errorf("expected current version in detail, got:\n%s", view)
	}
	if !strings.Contains(view, "some copy") {
		t.Errorf("expected content in detail, got:\n%s", view)
	}
}

func TestAssetsEditFlow(t *testing.T) {
	m := newTestAssetsModel()
	m, _ = m.Update(assetsLoadedMsg{page: assetsPage(1, 1, 20,
		makeTestAsset(1, "Hero headline", domain.AssetAdCopy, 1),
	)})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	if m.mode != assetsEdit {
		t.Fatal("expected edit mode")
	}
	if m.editContent != "some copy" {
		t.Errorf("expected edit buffer seeded from current content, got %q", m.editContent)
	}
	if !m.isEditing() {
		t.Error("expected isEditing=true in edit mode")
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("expected revision command")
	}
	if !m.saving {
		t.Error("expected saving=true while revision in flight")
	}

	// Duplicate save while in flight is ignored.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Error("expected overlapping save ignored")
	}

	revised := makeTestAsset(1, "Hero headline", domain.AssetAdCopy, 2)
	revised.Content = "better copy"
	m, _ = m.Update(assetRevisedMsg{asset: &revised})
	if m.mode != assetsDetail {
		t.Error("expected return to detail after save")
	}
	if m.detail.CurrentVersion != 2 {
		t.Errorf("expected detail at returned version 2, got %d", m.detail.CurrentVersion)
	}
	if m.page.Items[0].CurrentVersion != 2 {
		t.Errorf("expected list row updated, got v%d", m.page.Items[0].CurrentVersion)
	}
	if !strings.Contains(m.View(), "saved as v2") {
		t.Errorf("expected save notice, got:\n%s", m.View())
	}
}

func TestAssetsUndoRedoReplacesFromResponse(t *testing.T) {
	m := newTestAssetsModel()
	m, _ = m.Update(assetsLoadedMsg{page: assetsPage(1, 1, 20,
		makeTestAsset(1, "Hero headline", domain.AssetAdCopy, 3),
	)})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("u")})
	if cmd == nil {
		t.Fatal("expected undo command")
	}
	if !m.saving {
		t.Error("expected saving=true while switch in flight")
	}

	rolled := makeTestAsset(1, "Hero headline", domain.AssetAdCopy, 2)
	m, _ = m.Update(assetSwitchedMsg{asset: &rolled})
	if m.detail.CurrentVersion != 2 {
		t.Errorf("expected detail at v2 after undo, got v%d", m.detail.CurrentVersion)
	}
	if !strings.Contains(m.View(), "now at v2") {
		t.Errorf("expected switch notice, got:\n%s", m.View())
	}

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if cmd == nil {
		t.Fatal("expected redo command")
	}
}

func TestAssetsVersionHistoryMarksCurrent(t *testing.T) {
	m := newTestAssetsModel()
	asset := makeTestAsset(1, "Hero headline", domain.AssetAdCopy, 2)
	m.detail = &asset
	m.mode = assetsDetail

	m, _ = m.Update(versionsLoadedMsg{versions: []domain.AssetVersion{
		{ID: 30, AssetID: 1, VersionNumber: 3, Content: "third", ChangeNote: "punchier", CreatedAt: time.Now()},
		{ID: 20, AssetID: 1, VersionNumber: 2, Content: "second", CreatedAt: time.Now()},
		{ID: 10, AssetID: 1, VersionNumber: 1, Content: "first", CreatedAt: time.Now()},
	}})
	if m.mode != assetsVersions {
		t.Fatal("expected versions mode")
	}

	view := m.View()
	if !strings.Contains(view, "punchier") {
		t.Errorf("expected change note in history, got:\n%s", view)
	}
	if !strings.Contains(view, "current v2") {
		t.Errorf("expected current version marker, got:\n%s", view)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != assetsDetail {
		t.Error("expected return to detail after esc")
	}
}

func TestAssetsSessionExpiryEmitsAuthRequired(t *testing.T) {
	m := newTestAssetsModel()
	m, cmd := m.Update(assetsLoadedMsg{err: sessionExpired()})
	if cmd == nil {
		t.Fatal("expected redirect command on session expiry")
	}
	if _, ok := cmd().(authRequiredMsg); !ok {
		t.Errorf("expected authRequiredMsg, got %T", cmd())
	}
	if m.errMsg == "" {
		t.Error("expected error recorded")
	}
}
