// Package deeplink turns incoming URLs into navigation targets.
package deeplink

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/ports"
)

// Resolver accepts scheme links (komunity://group/12) and web links on
// the configured hosts (https://komunity.app/groups/12/).
type Resolver struct {
	scheme string
	hosts  map[string]struct{}
}

func NewResolver(scheme string, hosts []string) *Resolver {
	r := &Resolver{scheme: strings.ToLower(scheme), hosts: make(map[string]struct{}, len(hosts))}
	for _, h := range hosts {
		r.hosts[strings.ToLower(h)] = struct{}{}
	}
	return r
}

var _ ports.DeepLinkResolver = (*Resolver)(nil)

func (r *Resolver) Parse(rawURL string) (ports.DeepLinkTarget, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ports.DeepLinkTarget{}, fmt.Errorf("%w: malformed link %q", apperrors.ErrValidation, rawURL)
	}

	var kind, id string
	switch scheme := strings.ToLower(u.Scheme); {
	case scheme == r.scheme && r.scheme != "":
		// The entity sits in the host position: komunity://group/12
		kind = strings.ToLower(u.Host)
		id = strings.Trim(u.Path, "/")
		if kind == "" {
			kind, id, _ = strings.Cut(strings.Trim(u.Opaque+u.Path, "/"), "/")
		}
	case scheme == "https" || scheme == "http":
		if _, ok := r.hosts[strings.ToLower(u.Hostname())]; !ok {
			return ports.DeepLinkTarget{}, fmt.Errorf("%w: unsupported host in %q", apperrors.ErrValidation, rawURL)
		}
		var plural string
		plural, id, _ = strings.Cut(strings.Trim(u.Path, "/"), "/")
		kind = strings.TrimSuffix(strings.ToLower(plural), "s")
	default:
		return ports.DeepLinkTarget{}, fmt.Errorf("%w: unsupported link %q", apperrors.ErrValidation, rawURL)
	}

	target := ports.DeepLinkTarget{Kind: ports.DeepLinkKind(kind)}
	if target.Kind != ports.DeepLinkGroup && target.Kind != ports.DeepLinkPost {
		return ports.DeepLinkTarget{}, fmt.Errorf("%w: unknown link target %q", apperrors.ErrValidation, kind)
	}
	target.ID, err = strconv.ParseInt(id, 10, 64)
	if err != nil || target.ID <= 0 {
		return ports.DeepLinkTarget{}, fmt.Errorf("%w: invalid %s id %q", apperrors.ErrValidation, kind, id)
	}
	return target, nil
}
