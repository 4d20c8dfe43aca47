package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/evoss/adloom/pkg/client"
	"github.com/evoss/adloom/pkg/domain"
)

type testErr struct{ msg string }

func (e *testErr) Error() string { return e.msg }

func newTestClient(token string) *client.Client {
	return client.New(client.Config{}, client.NewSession(token))
}

func sessionExpired() error {
	return &client.SessionExpiredError{Message: "token expired"}
}

func newTestApp(token string) App {
	a := NewApp(newTestClient(token), "test")
	a.width = 80
	a.height = 30
	return a
}

func makeTestCampaign(id int64, name, status string) domain.Campaign {
	return domain.Campaign{
		ID:        id,
		Name:      name,
		Goal:      "more signups",
		Audience:  "developers",
		Status:    status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func makeTestAsset(id int64, title, assetType string, version int) domain.Asset {
	return domain.Asset{
		ID:             id,
		CampaignID:     1,
		AssetType:      assetType,
		Title:          title,
		Content:        "some copy",
		CurrentVersion: version,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

func TestAppStartsOnLoginWithoutCredential(t *testing.T) {
	a := newTestApp("")
	if a.view != viewLogin {
		t.Errorf("expected viewLogin for empty session, got %d", a.view)
	}
}

func TestAppStartsOnCampaignsWithCredential(t *testing.T) {
	a := newTestApp("tok")
	if a.view != viewCampaigns {
		t.Errorf("expected viewCampaigns for held credential, got %d", a.view)
	}
}

func TestAppTabSwitching(t *testing.T) {
	tests := []struct {
		key      string
		wantView view
	}{
		{"1", viewCampaigns},
		{"2", viewAssets},
		{"3", viewStudio},
		{"4", viewAccount},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			app := newTestApp("tok")
			app.view = viewStudio
			app.studio.showResult = true // nav mode so global keys work
			model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tc.key)})
			a := model.(App)
			if a.view != tc.wantView {
				t.Errorf("after key %q: expected view=%d, got %d", tc.key, tc.wantView, a.view)
			}
		})
	}
}

func TestAppGlobalQuitOnQ(t *testing.T) {
	a := newTestApp("tok")
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command on 'q', got nil")
	}
}

func TestAppTabKeysIgnoredOnLoginView(t *testing.T) {
	a := newTestApp("")
	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	got := model.(App)
	if got.view != viewLogin {
		t.Errorf("expected to stay on login view, got %d", got.view)
	}
}

func TestAppAuthRequiredRoutesToLogin(t *testing.T) {
	a := newTestApp("tok")
	a.view = viewAssets

	model, _ := a.Update(authRequiredMsg{})
	got := model.(App)
	if got.view != viewLogin {
		t.Fatalf("expected viewLogin after authRequiredMsg, got %d", got.view)
	}
	view := got.View()
	if !strings.Contains(view, "session expired") {
		t.Errorf("expected session expired notice in view, got:\n%s", view)
	}
}

func TestAppOpenAssetsFiltersByCampaign(t *testing.T) {
	a := newTestApp("tok")

	model, _ := a.Update(openAssetsMsg{campaignID: 7, campaignName: "Launch Week"})
	got := model.(App)
	if got.view != viewAssets {
		t.Fatalf("expected viewAssets, got %d", got.view)
	}
	if got.assets.campaignID != 7 {
		t.Errorf("expected campaign filter 7, got %d", got.assets.campaignID)
	}
	if got.assets.campaignName != "Launch Week" {
		t.Errorf("expected campaign name in filter, got %q", got.assets.campaignName)
	}
}

func TestAppLoggedInSwitchesToCampaigns(t *testing.T) {
	a := newTestApp("")
	model, cmd := a.Update(loggedInMsg{profile: &domain.UserProfile{Name: "Ada"}})
	got := model.(App)
	if got.view != viewCampaigns {
		t.Errorf("expected viewCampaigns after login, got %d", got.view)
	}
	if cmd == nil {
		t.Error("expected campaigns load command after login")
	}
}

func TestAppHeaderShowsProfileAndCredits(t *testing.T) {
	a := newTestApp("tok")
	model, _ := a.Update(profileLoadedMsg{
		profile: &domain.UserProfile{Name: "Ada Lovelace", Email: "ada@example.com"},
		balance: &domain.CreditBalance{Balance: 42},
	})
	got := model.(App)

	view := got.View()
	if !strings.Contains(view, "Ada Lovelace") {
		t.Errorf("expected profile name in header, got:\n%s", view)
	}
	if !strings.Contains(view, "42 credits") {
		t.Errorf("expected credit balance in header, got:\n%s", view)
	}
}

func TestExpiredCmdOnlyFiresOnSessionExpiry(t *testing.T) {
	if cmd := expiredCmd(nil); cmd != nil {
		t.Error("expected nil cmd for nil error")
	}
	if cmd := expiredCmd(&testErr{msg: "boom"}); cmd != nil {
		t.Error("expected nil cmd for ordinary error")
	}
	cmd := expiredCmd(&client.SessionExpiredError{})
	if cmd == nil {
		t.Fatal("expected cmd for session expiry")
	}
	if _, ok := cmd().(authRequiredMsg); !ok {
		t.Errorf("expected authRequiredMsg, got %T", cmd())
	}
}
