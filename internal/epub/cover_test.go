package epub

import "testing"

func TestDetectCover(t *testing.T) {
	tests := []struct {
		name       string
		items      []*ManifestItem
		coverID    string
		wantHref   string
		wantMethod string
		wantOK     bool
	}{
		{
			name: "properties",
			items: []*ManifestItem{
				{ID: "ch1", Href: "text/ch1.xhtml", MediaType: "application/xhtml+xml"},
				{ID: "cover-img", Href: "images/cover.jpg", MediaType: "image/jpeg", Properties: []string{"cover-image"}},
			},
			wantHref:   "images/cover.jpg",
			wantMethod: "properties",
			wantOK:     true,
		},
		{
			name: "meta",
			items: []*ManifestItem{
				{ID: "img1", Href: "images/front.png", MediaType: "image/png"},
			},
			coverID:    "img1",
			wantHref:   "images/front.png",
			wantMethod: "meta",
			wantOK:     true,
		},
		{
			name: "meta pointing at page falls through to filename",
			items: []*ManifestItem{
				{ID: "cover-page", Href: "cover.xhtml", MediaType: "application/xhtml+xml"},
				{ID: "img", Href: "images/Cover.JPG", MediaType: "image/jpeg"},
			},
			coverID:    "cover-page",
			wantHref:   "images/Cover.JPG",
			wantMethod: "filename",
			wantOK:     true,
		},
		{
			name: "svg excluded",
			items: []*ManifestItem{
				{ID: "c", Href: "images/cover.svg", MediaType: "image/svg+xml"},
			},
		},
		{
			name: "none",
			items: []*ManifestItem{
				{ID: "ch1", Href: "ch1.xhtml", MediaType: "application/xhtml+xml"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := DetectCover(BookManifest{Items: tt.items}, BookMetadata{CoverID: tt.coverID})
			if ok != tt.wantOK {
				t.Fatalf("DetectCover() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if info.Item.Href != tt.wantHref {
				t.Errorf("Href = %q, want %q", info.Item.Href, tt.wantHref)
			}
			if info.DetectionMethod != tt.wantMethod {
				t.Errorf("DetectionMethod = %q, want %q", info.DetectionMethod, tt.wantMethod)
			}
		})
	}
}
