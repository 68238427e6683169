package googlechart

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"sort"
	"strings"

	"github.com/blueprintmrk/graphy/pkg/chart"
	"github.com/blueprintmrk/graphy/pkg/errors"
	"github.com/blueprintmrk/graphy/pkg/render"
)

const backendName = "googlechart"

// DefaultBaseURL is the Google Chart API endpoint used when the "base_url"
// option is unset.
const DefaultBaseURL = "http://chart.apis.google.com/chart"

// Option keys understood by the googlechart backends, in addition to the
// shared render.OptWidth and render.OptHeight.
const (
	OptBaseURL      = "base_url"      // string, API endpoint prefix
	OptEncoding     = "encoding"      // string, "simple" or "extended"
	OptEscape       = "escape"        // bool, URL-escape the query (default true)
	OptHTMLEntities = "html_entities" // bool, escape &<>" as HTML entities
	OptOutput       = "output"        // string, "url" (default) or "img"
	OptExtra        = "extra"         // map[string]string, raw API param overrides
)

// Artifact content types produced by the backends.
const (
	ContentTypeURL = "text/uri-list"
	ContentTypeImg = "text/html"
)

// URLBackend encodes charts as Google Chart API URLs or img tags. It never
// touches the network; pair it with [ImageBackend] to fetch pixels. The
// zero value is ready to use.
type URLBackend struct{}

// NewURL returns a URL-producing backend.
func NewURL() *URLBackend { return &URLBackend{} }

func (*URLBackend) Name() string { return backendName }

// Render implements render.Backend.
func (b *URLBackend) Render(_ context.Context, c *chart.Chart, opts render.Options) (chart.Artifact, error) {
	if opts.String(OptOutput, "url") == "img" {
		tag, err := Img(c, opts)
		if err != nil {
			return chart.Artifact{}, err
		}
		return chart.Artifact{ContentType: ContentTypeImg, Data: []byte(tag)}, nil
	}
	u, err := URL(c, opts)
	if err != nil {
		return chart.Artifact{}, err
	}
	return chart.Artifact{ContentType: ContentTypeURL, Data: []byte(u)}, nil
}

// URL encodes a formatted chart as a Google Chart API URL. Parameters are
// emitted in sorted order so identical charts produce identical URLs.
func URL(c *chart.Chart, opts render.Options) (string, error) {
	opts = opts.WithDefaults()
	base := opts.String(OptBaseURL, DefaultBaseURL)
	if err := errors.ValidateURL(base); err != nil {
		return "", err
	}
	params, err := Params(c, opts)
	if err != nil {
		return "", err
	}
	u := encodeURL(base, params, opts.Bool(OptEscape, true))
	if opts.Bool(OptHTMLEntities, false) {
		u = html.EscapeString(u)
	}
	return u, nil
}

// Img encodes a formatted chart as an HTML img tag. The embedded URL is
// always HTML-entity escaped.
func Img(c *chart.Chart, opts render.Options) (string, error) {
	opts = opts.WithDefaults() // copies, safe to mutate
	opts[OptHTMLEntities] = true
	u, err := URL(c, opts)
	if err != nil {
		return "", err
	}
	width := opts.Int(render.OptWidth, render.DefaultWidth)
	height := opts.Int(render.OptHeight, render.DefaultHeight)
	return fmt.Sprintf(`<img src="%s" width="%d" height="%d" alt="chart"/>`, u, width, height), nil
}

// encodeURL assembles the query string with keys sorted. With escaping off
// the reserved characters (| and ,) stay readable, which helps debugging.
func encodeURL(base string, params map[string]string, escape bool) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := params[k]
		if escape {
			v = url.QueryEscape(v)
		}
		parts = append(parts, k+"="+v)
	}
	return base + "?" + strings.Join(parts, "&")
}
