package domain_test

import (
	"math/rand"
	"testing"

	"github.com/SscSPs/komunity_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigation_StartsOnHomeRoot(t *testing.T) {
	nav := domain.NewNavigation()

	screen := nav.Screen()
	assert.Equal(t, domain.FocusTabRoot, screen.Kind)
	assert.Equal(t, domain.TabHome, screen.Tab)
	assert.Equal(t, "Home", nav.Title())
}

func TestNavigation_OpenFollowsPrecedenceNotOrder(t *testing.T) {
	nav := domain.NewNavigation()
	require.NoError(t, nav.Open(domain.Focus{Kind: domain.FocusGroupFeed, Ref: domain.EntityRef{ID: 1, Name: "Ubuntu Circle"}}))
	require.NoError(t, nav.Open(domain.Focus{Kind: domain.FocusGroupManagement, Ref: domain.EntityRef{ID: 1}}))
	require.NoError(t, nav.Open(domain.Focus{Kind: domain.FocusPostDetail, Ref: domain.EntityRef{ID: 9}}))

	assert.Equal(t, domain.FocusGroupManagement, nav.Screen().Kind)
	assert.Equal(t, "Group Management", nav.Title())

	kinds := []domain.FocusKind{}
	for _, f := range nav.Overlays() {
		kinds = append(kinds, f.Kind)
	}
	assert.Equal(t, []domain.FocusKind{domain.FocusGroupManagement, domain.FocusPostDetail, domain.FocusGroupFeed}, kinds)
}

func TestNavigation_OpenSameKindReplacesPayload(t *testing.T) {
	nav := domain.NewNavigation()
	require.NoError(t, nav.Open(domain.Focus{Kind: domain.FocusPostDetail, Ref: domain.EntityRef{ID: 1}}))
	require.NoError(t, nav.Open(domain.Focus{Kind: domain.FocusPostDetail, Ref: domain.EntityRef{ID: 2}}))

	overlays := nav.Overlays()
	require.Len(t, overlays, 1)
	assert.Equal(t, int64(2), overlays[0].Ref.ID)
}

func TestNavigation_OpenRejectsUnknownKind(t *testing.T) {
	nav := domain.NewNavigation()
	assert.Error(t, nav.Open(domain.Focus{Kind: domain.FocusTabRoot}))
	assert.Error(t, nav.Open(domain.Focus{Kind: "bogus"}))
	assert.Empty(t, nav.Overlays())
}

func TestNavigation_BackRemovesExactlyHighestPriority(t *testing.T) {
	nav := domain.NewNavigation()
	require.NoError(t, nav.Open(domain.Focus{Kind: domain.FocusGroupFeed, Ref: domain.EntityRef{ID: 4, Name: "Burial Society"}}))
	require.NoError(t, nav.Open(domain.Focus{Kind: domain.FocusPostDetail, Ref: domain.EntityRef{ID: 7}}))

	removed, ok := nav.Back()
	require.True(t, ok)
	assert.Equal(t, domain.FocusPostDetail, removed.Kind)
	assert.Equal(t, "Burial Society", nav.Title())

	removed, ok = nav.Back()
	require.True(t, ok)
	assert.Equal(t, domain.FocusGroupFeed, removed.Kind)
	assert.Equal(t, domain.FocusTabRoot, nav.Screen().Kind)

	_, ok = nav.Back()
	assert.False(t, ok)
}

// Random activation sequences: each Back removes one overlay, and it is always
// the lowest-ranked one that was active.
func TestNavigation_BackProperty(t *testing.T) {
	kinds := domain.FocusPrecedence()
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		nav := domain.NewNavigation()
		active := map[domain.FocusKind]bool{}
		opens := rng.Intn(len(kinds) * 2)
		for i := 0; i < opens; i++ {
			k := kinds[rng.Intn(len(kinds))]
			require.NoError(t, nav.Open(domain.Focus{Kind: k}))
			active[k] = true
		}

		for len(active) > 0 {
			best := domain.FocusTabRoot
			for k := range active {
				if k.Rank() < best.Rank() {
					best = k
				}
			}
			before := len(nav.Overlays())
			removed, ok := nav.Back()
			require.True(t, ok)
			assert.Equal(t, best, removed.Kind)
			assert.Equal(t, before-1, len(nav.Overlays()))
			delete(active, best)
		}
		assert.Equal(t, domain.FocusTabRoot, nav.Screen().Kind)
	}
}

func TestNavigation_SwitchTabClearsOverlays(t *testing.T) {
	tabs := []domain.Tab{domain.TabHome, domain.TabDiscovery, domain.TabWallet, domain.TabProfile}
	rng := rand.New(rand.NewSource(7))
	nav := domain.NewNavigation()

	for i := 0; i < 100; i++ {
		if rng.Intn(2) == 0 {
			kinds := domain.FocusPrecedence()
			require.NoError(t, nav.Open(domain.Focus{Kind: kinds[rng.Intn(len(kinds))]}))
		}
		tab := tabs[rng.Intn(len(tabs))]
		require.NoError(t, nav.SwitchTab(tab))

		screen := nav.Screen()
		assert.Equal(t, domain.FocusTabRoot, screen.Kind)
		assert.Equal(t, tab, screen.Tab)
		assert.Empty(t, nav.Overlays())
	}

	assert.Error(t, nav.SwitchTab("settings"))
}

func TestNavigation_FocusOnlyForcesHome(t *testing.T) {
	nav := domain.NewNavigation()
	require.NoError(t, nav.SwitchTab(domain.TabWallet))
	require.NoError(t, nav.Open(domain.Focus{Kind: domain.FocusContributions}))

	require.NoError(t, nav.FocusOnly(domain.Focus{Kind: domain.FocusGroupFeed, Ref: domain.EntityRef{ID: 12}}))

	assert.Equal(t, domain.TabHome, nav.Tab())
	overlays := nav.Overlays()
	require.Len(t, overlays, 1)
	assert.Equal(t, domain.FocusGroupFeed, overlays[0].Kind)
	assert.Equal(t, int64(12), overlays[0].Ref.ID)
}

func TestNavigation_SnapshotIsIndependent(t *testing.T) {
	nav := domain.NewNavigation()
	require.NoError(t, nav.Open(domain.Focus{Kind: domain.FocusGroupFeed}))
	require.NoError(t, nav.Open(domain.Focus{Kind: domain.FocusPostDetail}))
	snapshot := nav

	nav.Back()

	assert.Len(t, snapshot.Overlays(), 2)
	assert.Len(t, nav.Overlays(), 1)
}

func TestFocusTitles(t *testing.T) {
	tests := []struct {
		focus domain.Focus
		want  string
	}{
		{domain.Focus{Kind: domain.FocusCreateGroup}, "Create Group"},
		{domain.Focus{Kind: domain.FocusContributions}, "My Contributions"},
		{domain.Focus{Kind: domain.FocusGroupManagement}, "Group Management"},
		{domain.Focus{Kind: domain.FocusPostDetail}, "Discussion"},
		{domain.Focus{Kind: domain.FocusGroupFeed}, "Group Feed"},
		{domain.Focus{Kind: domain.FocusGroupFeed, Ref: domain.EntityRef{Name: "Ubuntu Circle"}}, "Ubuntu Circle"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.focus.Title(), "kind %s", tt.focus.Kind)
	}
}
