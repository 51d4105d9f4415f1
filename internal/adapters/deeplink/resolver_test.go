package deeplink_test

import (
	"testing"

	"github.com/SscSPs/komunity_app/internal/adapters/deeplink"
	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/ports"
	"github.com/stretchr/testify/assert"
)

func TestResolver_Parse(t *testing.T) {
	r := deeplink.NewResolver("komunity", []string{"komunity.app"})

	testCases := []struct {
		url  string
		want ports.DeepLinkTarget
	}{
		{"komunity://group/12", ports.DeepLinkTarget{Kind: ports.DeepLinkGroup, ID: 12}},
		{"komunity://post/34/", ports.DeepLinkTarget{Kind: ports.DeepLinkPost, ID: 34}},
		{"KOMUNITY://Group/5", ports.DeepLinkTarget{Kind: ports.DeepLinkGroup, ID: 5}},
		{"https://komunity.app/groups/12/", ports.DeepLinkTarget{Kind: ports.DeepLinkGroup, ID: 12}},
		{"https://komunity.app/posts/34", ports.DeepLinkTarget{Kind: ports.DeepLinkPost, ID: 34}},
	}
	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			got, err := r.Parse(tc.url)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolver_Rejects(t *testing.T) {
	r := deeplink.NewResolver("komunity", []string{"komunity.app"})

	for _, raw := range []string{
		"",
		"komunity://wallet/1",
		"komunity://group/abc",
		"komunity://group/0",
		"https://evil.example/groups/12/",
		"https://komunity.app/members/3/",
		"ftp://komunity.app/groups/12/",
	} {
		_, err := r.Parse(raw)
		assert.ErrorIs(t, err, apperrors.ErrValidation, raw)
	}
}
