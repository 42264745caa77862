package poster

import (
	"net/url"
	"strings"
)

const (
	Placeholder = "https://placehold.co/400x600/242424/646cff?text=TBD"
	Missing     = "https://placehold.co/400x600/242424/646cff?text=No+Poster"

	// OMDb reports a missing poster with this literal instead of leaving it empty
	omdbMissing = "N/A"
)

type Kind int

const (
	KindMissing Kind = iota
	KindRemote
)

type Info struct {
	Kind Kind
	URL  string
}

func Resolve(ref string) Info {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.EqualFold(ref, omdbMissing) {
		return Info{Kind: KindMissing, URL: Missing}
	}

	u, err := url.Parse(ref)
	if err != nil || u.Host == "" {
		return Info{Kind: KindMissing, URL: Missing}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Info{Kind: KindMissing, URL: Missing}
	}

	return Info{Kind: KindRemote, URL: ref}
}

// URL is a shorthand for Resolve(ref).URL.
func URL(ref string) string {
	return Resolve(ref).URL
}
