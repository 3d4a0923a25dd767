package chapter

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Resources lists the files a chapter references, resolved to archive
// paths.
type Resources struct {
	Stylesheets []string
	Images      []string
}

// Resources collects stylesheet links and image sources from the raw
// chapter markup. External URLs and fragment-only references are skipped.
func (c *Chapter) Resources() (Resources, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(c.raw))
	if err != nil {
		return Resources{}, fmt.Errorf("failed to parse XHTML: %w", err)
	}

	res := Resources{
		Stylesheets: []string{},
		Images:      []string{},
	}

	// Get base directory for resolving relative paths
	baseDir := path.Dir(c.Path)

	doc.Find("link[rel='stylesheet']").Each(func(i int, s *goquery.Selection) {
		if href, exists := s.Attr("href"); exists {
			if resolved, ok := resolvePath(baseDir, href); ok {
				res.Stylesheets = append(res.Stylesheets, resolved)
			}
		}
	})

	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		if src, exists := s.Attr("src"); exists {
			if resolved, ok := resolvePath(baseDir, src); ok {
				res.Images = append(res.Images, resolved)
			}
		}
	})

	return res, nil
}

// resolvePath resolves a relative reference against a base directory
// baseDir: base directory (e.g., "OPS/text" for "OPS/text/chapter1.xhtml")
// ref: relative reference (e.g., "../images/photo.jpg")
// returns: resolved path (e.g., "OPS/images/photo.jpg")
func resolvePath(baseDir, ref string) (string, bool) {
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}
	return path.Clean(path.Join(baseDir, u.Path)), true
}
