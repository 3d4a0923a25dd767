package epub

import "testing"

func strPtr(s string) *string { return &s }

func eqPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func show(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return "\"" + *s + "\""
}

func TestExtractMetadata(t *testing.T) {
	tests := []struct {
		name string
		opf  string
		want BookMetadata
	}{
		{
			name: "all fields",
			opf: `<package xmlns="http://www.idpf.org/2007/opf">
<metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:title>Moby Dick</dc:title>
  <dc:creator>Herman Melville</dc:creator>
  <dc:identifier>urn:isbn:123</dc:identifier>
  <dc:language>en</dc:language>
  <dc:publisher>Harper</dc:publisher>
  <dc:rights>Public domain</dc:rights>
</metadata></package>`,
			want: BookMetadata{
				Title:      strPtr("Moby Dick"),
				Creator:    strPtr("Herman Melville"),
				Identifier: strPtr("urn:isbn:123"),
				Language:   strPtr("en"),
				Publisher:  strPtr("Harper"),
				Rights:     strPtr("Public domain"),
			},
		},
		{
			name: "absent fields stay nil",
			opf: `<package><metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:title>Only Title</dc:title>
</metadata></package>`,
			want: BookMetadata{Title: strPtr("Only Title")},
		},
		{
			name: "empty element yields empty string",
			opf: `<package><metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:title></dc:title><dc:rights>   </dc:rights>
</metadata></package>`,
			want: BookMetadata{Title: strPtr(""), Rights: strPtr("")},
		},
		{
			name: "last value wins and text is trimmed",
			opf: `<package><metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:creator>
     First Author
  </dc:creator>
  <dc:creator>Second Author</dc:creator>
</metadata></package>`,
			want: BookMetadata{Creator: strPtr("Second Author")},
		},
		{
			name: "undeclared dc prefix",
			opf:  `<package><metadata><dc:title>Loose</dc:title></metadata></package>`,
			want: BookMetadata{Title: strPtr("Loose")},
		},
		{
			name: "other namespaces ignored",
			opf: `<package xmlns="http://www.idpf.org/2007/opf"><metadata>
  <title>Not Dublin Core</title>
</metadata></package>`,
			want: BookMetadata{},
		},
		{
			name: "entities and cover meta",
			opf: `<package><metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:title>War &amp; Peace&nbsp;II</dc:title>
  <meta name="cover" content="cover-img"/>
</metadata></package>`,
			want: BookMetadata{Title: strPtr("War & Peace\u00a0II"), CoverID: "cover-img"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractMetadata(tt.opf)
			if err != nil {
				t.Fatalf("ExtractMetadata() error = %v", err)
			}
			fields := []struct {
				name      string
				got, want *string
			}{
				{"Title", got.Title, tt.want.Title},
				{"Creator", got.Creator, tt.want.Creator},
				{"Identifier", got.Identifier, tt.want.Identifier},
				{"Language", got.Language, tt.want.Language},
				{"Publisher", got.Publisher, tt.want.Publisher},
				{"Rights", got.Rights, tt.want.Rights},
			}
			for _, f := range fields {
				if !eqPtr(f.got, f.want) {
					t.Errorf("%s = %s, want %s", f.name, show(f.got), show(f.want))
				}
			}
			if got.CoverID != tt.want.CoverID {
				t.Errorf("CoverID = %q, want %q", got.CoverID, tt.want.CoverID)
			}
		})
	}
}

func TestExtractMetadata_Malformed(t *testing.T) {
	if _, err := ExtractMetadata(`<package><metadata></package>`); err == nil {
		t.Fatal("ExtractMetadata() expected error for malformed XML")
	}
}

func TestBookMetadata_Display(t *testing.T) {
	var md BookMetadata
	if got := md.DisplayTitle(); got != "Unknown" {
		t.Errorf("DisplayTitle() = %q, want %q", got, "Unknown")
	}
	if got := md.DisplayCreator(); got != "Unknown" {
		t.Errorf("DisplayCreator() = %q, want %q", got, "Unknown")
	}

	md.Title = strPtr("Dune")
	md.Creator = strPtr("")
	if got := md.DisplayTitle(); got != "Dune" {
		t.Errorf("DisplayTitle() = %q, want %q", got, "Dune")
	}
	if got := md.DisplayCreator(); got != "Unknown" {
		t.Errorf("DisplayCreator() = %q, want %q", got, "Unknown")
	}
}
