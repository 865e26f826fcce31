package markdown

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mjarosz/clipdown"
)

// extensionSchemes are browser-extension protocols that leak into
// clipped pages. Their URLs never resolve outside the extension, so
// they are rewritten against the source page instead.
var extensionSchemes = map[string]bool{
	"chrome-extension":     true,
	"moz-extension":        true,
	"safari-web-extension": true,
	"extension":            true,
}

// resolvableAttrs are the attributes the resolver rewrites.
var resolvableAttrs = []string{"href", "src", "srcset"}

// ResolveURLs rewrites relative href, src and srcset attributes in an
// HTML fragment to absolute URLs against base. Already absolute
// values, data URIs, fragment references and protocol-relative URLs
// are left untouched. A value that fails to parse keeps its original
// form; resolution never fails the whole call once the base and
// fragment themselves parse.
func ResolveURLs(fragment, base string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", clipdown.Errorf(clipdown.EINVALID, "parse html: %s", err)
	}
	if !resolveDocument(doc, base, slog.New(slog.DiscardHandler)) {
		return "", clipdown.Errorf(clipdown.EINVALID, "parse base URL %q", base)
	}
	return doc.Find("body").Html()
}

// resolveDocument rewrites URL attributes in place on a parsed
// document. Returns false only when the base URL itself is unusable;
// per-attribute failures are logged and skipped.
func resolveDocument(doc *goquery.Document, base string, logger *slog.Logger) bool {
	baseURL, err := url.Parse(base)
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		logger.Warn("unusable base URL, skipping URL resolution", "base", base, "err", err)
		return false
	}

	for _, attr := range resolvableAttrs {
		doc.Find("[" + attr + "]").Each(func(_ int, s *goquery.Selection) {
			val, _ := s.Attr(attr)
			var resolved string
			var err error
			if attr == "srcset" {
				resolved, err = resolveSrcset(val, baseURL)
			} else {
				resolved, err = resolveValue(val, baseURL)
			}
			if err != nil {
				logger.Warn("could not resolve URL, keeping original", "value", val, "err", err)
				return
			}
			if resolved != val {
				s.SetAttr(attr, resolved)
			}
		})
	}
	return true
}

// resolveValue resolves a single URL attribute value against base.
func resolveValue(val string, base *url.URL) (string, error) {
	trimmed := strings.TrimSpace(val)
	if trimmed == "" {
		return val, nil
	}
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "http://"),
		strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(lower, "data:"),
		strings.HasPrefix(trimmed, "#"),
		strings.HasPrefix(trimmed, "//"):
		return val, nil
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return "", err
	}

	if extensionSchemes[u.Scheme] {
		return resolveExtensionURL(u, base), nil
	}
	if u.IsAbs() {
		// some other scheme (mailto:, tel:, ...), leave alone
		return val, nil
	}

	// Standard resolution handles directory normalization: a base
	// path not ending in / loses its final segment.
	return base.ResolveReference(u).String(), nil
}

// resolveExtensionURL rewrites an extension-local URL. When the
// authority looks like a domain (contains a dot) only the scheme is
// replaced; otherwise the path after the extension id is re-rooted at
// the base origin.
func resolveExtensionURL(u *url.URL, base *url.URL) string {
	if strings.Contains(u.Host, ".") {
		u.Scheme = base.Scheme
		return u.String()
	}
	rest := strings.TrimPrefix(u.Path, "/")
	return base.Scheme + "://" + base.Host + "/" + rest
}

// resolveSrcset resolves each comma-separated srcset candidate,
// preserving its width or density descriptor. Candidate URLs are
// assumed not to contain raw spaces or commas.
func resolveSrcset(val string, base *url.URL) (string, error) {
	candidates := strings.Split(val, ",")
	out := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		fields := strings.Fields(candidate)
		if len(fields) == 0 {
			continue
		}
		resolved, err := resolveValue(fields[0], base)
		if err != nil {
			return "", err
		}
		fields[0] = resolved
		out = append(out, strings.Join(fields, " "))
	}
	return strings.Join(out, ", "), nil
}
