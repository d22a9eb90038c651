package file

import (
	"testing"

	"go-fileshare/internal/config"
)

func loosePolicy() AccessPolicy {
	return AccessPolicy{
		LinkGeneration:   config.LinkGenerationAnyAuthenticated,
		LinkResolveScope: config.LinkResolveAnyRegistered,
	}
}

func strictPolicy() AccessPolicy {
	return AccessPolicy{
		LinkGeneration:   config.LinkGenerationOwnerOnly,
		LinkResolveScope: config.LinkResolveOwnerOrShared,
	}
}

func TestCanView(t *testing.T) {
	f := &File{UploadedBy: "owner", SharedWith: []string{"alice"}}
	p := loosePolicy()

	tests := []struct {
		name      string
		requester string
		want      bool
	}{
		{"owner always has access", "owner", true},
		{"recipient has access", "alice", true},
		{"stranger is denied", "bob", false},
		{"empty requester is denied", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.CanView(tt.requester, f); got != tt.want {
				t.Errorf("CanView(%q) = %v, want %v", tt.requester, got, tt.want)
			}
			// Download uses the same membership rule
			if got := p.CanDownload(tt.requester, f); got != tt.want {
				t.Errorf("CanDownload(%q) = %v, want %v", tt.requester, got, tt.want)
			}
		})
	}
}

func TestCanShareIsOwnerOnly(t *testing.T) {
	f := &File{UploadedBy: "owner", SharedWith: []string{"alice"}}
	p := loosePolicy()

	if !p.CanShare("owner", f) {
		t.Error("owner should be allowed to share")
	}
	if p.CanShare("alice", f) {
		t.Error("recipients must not be able to re-share")
	}
	if p.CanShare("bob", f) {
		t.Error("strangers must not be able to share")
	}
}

func TestCanGenerateLinkPolicies(t *testing.T) {
	f := &File{UploadedBy: "owner"}

	loose := loosePolicy()
	if !loose.CanGenerateLink("anyone", f) {
		t.Error("any authenticated user may mint a link under the loose policy")
	}

	strict := strictPolicy()
	if strict.CanGenerateLink("anyone", f) {
		t.Error("owner-only policy must reject non-owners")
	}
	if !strict.CanGenerateLink("owner", f) {
		t.Error("owner-only policy must still allow the owner")
	}
}

func TestCanResolveByTokenScopes(t *testing.T) {
	f := &File{UploadedBy: "owner", SharedWith: []string{"alice"}}

	loose := loosePolicy()
	if !loose.CanResolveByToken("stranger", f) {
		t.Error("any registered user may resolve under the loose scope")
	}

	strict := strictPolicy()
	if strict.CanResolveByToken("stranger", f) {
		t.Error("strict scope must reject users outside owner/sharedWith")
	}
	if !strict.CanResolveByToken("alice", f) {
		t.Error("strict scope must allow recipients")
	}
	if !strict.CanResolveByToken("owner", f) {
		t.Error("strict scope must allow the owner")
	}
}

func TestIsSharedWithSelfShare(t *testing.T) {
	// Nothing prevents an owner from appearing in shared_with; it is harmless.
	f := &File{UploadedBy: "owner", SharedWith: []string{"owner"}}
	if !loosePolicy().CanView("owner", f) {
		t.Error("self-shared owner must keep access")
	}
}
