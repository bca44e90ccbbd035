package content

import (
	"net/url"
	"strings"
)

// ResolveAsset turns an asset reference from a payload into an absolute URL.
//
//	https://cdn/x.png   unchanged
//	//cdn/x.png         base scheme
//	/static/x.png       base origin
//	img/x.png           appended to the base path
//
// An empty reference resolves to "".
func ResolveAsset(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || base == nil {
		return ref
	}
	switch {
	case strings.HasPrefix(ref, "//"):
		return base.Scheme + ":" + ref
	case strings.HasPrefix(ref, "/"):
		return base.Scheme + "://" + base.Host + ref
	}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return ref
	}
	return combineURL(base, ref)
}
