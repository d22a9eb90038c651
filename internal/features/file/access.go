package file

import "go-fileshare/internal/config"

// AccessPolicy holds the configurable strictness knobs for link generation
// and token resolution.
type AccessPolicy struct {
	LinkGeneration   string
	LinkResolveScope string
}

func NewAccessPolicy(cfg *config.Config) AccessPolicy {
	return AccessPolicy{
		LinkGeneration:   cfg.LinkGeneration,
		LinkResolveScope: cfg.LinkResolveScope,
	}
}

// CanView allows the owner and any share recipient.
func (p AccessPolicy) CanView(requester string, f *File) bool {
	return f.IsOwner(requester) || f.IsSharedWith(requester)
}

// CanDownload uses the same membership rule as CanView. The blob-existence
// check is separate: a missing blob is NotFound, never Forbidden.
func (p AccessPolicy) CanDownload(requester string, f *File) bool {
	return p.CanView(requester, f)
}

// CanShare allows only the owner; share rights do not cascade to recipients.
func (p AccessPolicy) CanShare(requester string, f *File) bool {
	return f.IsOwner(requester)
}

// CanGenerateLink is unrestricted under the default policy: any
// authenticated caller who can name the file id may mint a token.
func (p AccessPolicy) CanGenerateLink(requester string, f *File) bool {
	if p.LinkGeneration == config.LinkGenerationOwnerOnly {
		return f.IsOwner(requester)
	}
	return true
}

// CanResolveByToken assumes the requester's existence was already verified
// against the user store; the token itself is the capability. The strict
// scope additionally requires owner-or-recipient membership.
func (p AccessPolicy) CanResolveByToken(requester string, f *File) bool {
	if p.LinkResolveScope == config.LinkResolveOwnerOrShared {
		return f.IsOwner(requester) || f.IsSharedWith(requester)
	}
	return true
}
