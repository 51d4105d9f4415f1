package domain

import (
	"fmt"
	"slices"
)

// Tab is one of the always-available top-level destinations.
type Tab string

const (
	TabHome      Tab = "home"
	TabDiscovery Tab = "discovery"
	TabWallet    Tab = "wallet"
	TabProfile   Tab = "profile"
)

// IsValid reports whether t is a known tab.
func (t Tab) IsValid() bool {
	switch t {
	case TabHome, TabDiscovery, TabWallet, TabProfile:
		return true
	default:
		return false
	}
}

// Title is the header label of the tab root.
func (t Tab) Title() string {
	switch t {
	case TabHome:
		return "Home"
	case TabDiscovery:
		return "Discover"
	case TabWallet:
		return "Wallet"
	case TabProfile:
		return "Profile"
	default:
		return ""
	}
}

// FocusKind names a screen that can take over rendering from the tab root.
type FocusKind string

const (
	FocusCreateGroup     FocusKind = "create_group"
	FocusContributions   FocusKind = "contributions"
	FocusEditGroup       FocusKind = "edit_group"
	FocusMemberProfile   FocusKind = "member_profile"
	FocusAllMembers      FocusKind = "all_members"
	FocusGroupWallet     FocusKind = "group_wallet"
	FocusGroupManagement FocusKind = "group_management"
	FocusEditPost        FocusKind = "edit_post"
	FocusPostDetail      FocusKind = "post_detail"
	FocusCreatePost      FocusKind = "create_post"
	FocusInviteContacts  FocusKind = "invite_contacts"
	FocusGroupDetail     FocusKind = "group_detail"
	FocusGroupFeed       FocusKind = "group_feed"
	FocusTabRoot         FocusKind = "tab_root"
)

// focusPrecedence lists overlay kinds from highest to lowest priority.
var focusPrecedence = []FocusKind{
	FocusCreateGroup,
	FocusContributions,
	FocusEditGroup,
	FocusMemberProfile,
	FocusAllMembers,
	FocusGroupWallet,
	FocusGroupManagement,
	FocusEditPost,
	FocusPostDetail,
	FocusCreatePost,
	FocusInviteContacts,
	FocusGroupDetail,
	FocusGroupFeed,
}

var focusTitles = map[FocusKind]string{
	FocusCreateGroup:     "Create Group",
	FocusContributions:   "My Contributions",
	FocusEditGroup:       "Edit Group",
	FocusMemberProfile:   "Member Profile",
	FocusAllMembers:      "Members",
	FocusGroupWallet:     "Group Wallet",
	FocusGroupManagement: "Group Management",
	FocusEditPost:        "Edit Post",
	FocusPostDetail:      "Discussion",
	FocusCreatePost:      "New Post",
	FocusInviteContacts:  "Invite Contacts",
	FocusGroupDetail:     "Group Details",
	FocusGroupFeed:       "Group Feed",
}

// FocusPrecedence returns the overlay kinds from highest to lowest priority.
func FocusPrecedence() []FocusKind {
	return slices.Clone(focusPrecedence)
}

// Rank is the position of k in the precedence list; lower ranks win.
// The tab root and unknown kinds rank after every overlay.
func (k FocusKind) Rank() int {
	if i := slices.Index(focusPrecedence, k); i >= 0 {
		return i
	}
	return len(focusPrecedence)
}

// IsOverlay reports whether k is one of the overlay kinds.
func (k FocusKind) IsOverlay() bool {
	return slices.Contains(focusPrecedence, k)
}

// Focus is a single active overlay and the entity it shows.
type Focus struct {
	Kind FocusKind `json:"kind"`
	Ref  EntityRef `json:"ref"`
}

// Title is the header label for the focus.
func (f Focus) Title() string {
	if f.Kind == FocusGroupFeed && f.Ref.Name != "" {
		return f.Ref.Name
	}
	return focusTitles[f.Kind]
}

// Screen is the single rendered destination derived from a Navigation.
type Screen struct {
	Kind FocusKind `json:"kind"`
	Tab  Tab       `json:"tab"`
	Ref  EntityRef `json:"ref"`
}

// Title is the header label for the screen.
func (s Screen) Title() string {
	if s.Kind == FocusTabRoot {
		return s.Tab.Title()
	}
	return Focus{Kind: s.Kind, Ref: s.Ref}.Title()
}

// Navigation is the tab selection plus the overlays layered on top of it.
// Overlays are kept sorted by precedence with at most one entry per kind,
// so the rendered screen is always the first entry. Mutators copy the slice,
// so a Navigation value can be snapshotted by assignment.
type Navigation struct {
	tab      Tab
	overlays []Focus
}

// NewNavigation starts on the home tab with no overlays.
func NewNavigation() Navigation {
	return Navigation{tab: TabHome}
}

// Tab returns the active tab.
func (n Navigation) Tab() Tab {
	if n.tab == "" {
		return TabHome
	}
	return n.tab
}

// Overlays returns the active overlays, highest priority first.
func (n Navigation) Overlays() []Focus {
	return slices.Clone(n.overlays)
}

// Active returns the highest-priority overlay, if any.
func (n Navigation) Active() (Focus, bool) {
	if len(n.overlays) == 0 {
		return Focus{}, false
	}
	return n.overlays[0], true
}

// Has reports whether an overlay of kind k is active.
func (n Navigation) Has(k FocusKind) bool {
	return slices.ContainsFunc(n.overlays, func(f Focus) bool { return f.Kind == k })
}

// Screen derives the rendered destination.
func (n Navigation) Screen() Screen {
	if f, ok := n.Active(); ok {
		return Screen{Kind: f.Kind, Tab: n.Tab(), Ref: f.Ref}
	}
	return Screen{Kind: FocusTabRoot, Tab: n.Tab()}
}

// Title is the header label of the rendered destination.
func (n Navigation) Title() string {
	return n.Screen().Title()
}

// Open layers f over the current state. An overlay of the same kind is replaced.
func (n *Navigation) Open(f Focus) error {
	if !f.Kind.IsOverlay() {
		return fmt.Errorf("unknown focus kind %q", f.Kind)
	}
	n.overlays = slices.DeleteFunc(slices.Clone(n.overlays), func(existing Focus) bool { return existing.Kind == f.Kind })
	at, _ := slices.BinarySearchFunc(n.overlays, f.Kind.Rank(), func(existing Focus, rank int) int {
		return existing.Kind.Rank() - rank
	})
	n.overlays = slices.Insert(n.overlays, at, f)
	return nil
}

// Close removes the overlay of kind k and reports whether one was active.
func (n *Navigation) Close(k FocusKind) bool {
	before := len(n.overlays)
	n.overlays = slices.DeleteFunc(slices.Clone(n.overlays), func(f Focus) bool { return f.Kind == k })
	return len(n.overlays) != before
}

// Back removes exactly the highest-priority overlay. It reports false at the tab root.
func (n *Navigation) Back() (Focus, bool) {
	if len(n.overlays) == 0 {
		return Focus{}, false
	}
	top := n.overlays[0]
	n.overlays = slices.Clone(n.overlays[1:])
	return top, true
}

// SwitchTab clears every overlay and selects t.
func (n *Navigation) SwitchTab(t Tab) error {
	if !t.IsValid() {
		return fmt.Errorf("unknown tab %q", t)
	}
	n.overlays = nil
	n.tab = t
	return nil
}

// FocusOnly clears every overlay, selects the home tab and makes f the sole overlay.
func (n *Navigation) FocusOnly(f Focus) error {
	if !f.Kind.IsOverlay() {
		return fmt.Errorf("unknown focus kind %q", f.Kind)
	}
	n.tab = TabHome
	n.overlays = []Focus{f}
	return nil
}

// Reset returns to the home tab root.
func (n *Navigation) Reset() {
	n.tab = TabHome
	n.overlays = nil
}
