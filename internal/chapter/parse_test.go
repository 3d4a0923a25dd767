package chapter

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParse_WhitespacePreserved(t *testing.T) {
	tree, err := Parse(`<div>Hello there - <i>said Obi Wan</i></div>`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	root := tree.Root()
	if root.Tag() != RootTag {
		t.Fatalf("root Tag() = %q, want %q", root.Tag(), RootTag)
	}
	divs := root.Children()
	if len(divs) != 1 || divs[0].Tag() != "div" {
		t.Fatalf("root children = %d, want one div", len(divs))
	}
	div := divs[0]
	if got := div.Content(); got != "Hello there - " {
		t.Errorf("div Content() = %q, want %q", got, "Hello there - ")
	}

	children := div.Children()
	if len(children) != 1 {
		t.Fatalf("len(div.Children()) = %d, want 1", len(children))
	}
	i := children[0]
	if i.Tag() != "i" {
		t.Errorf("child Tag() = %q, want %q", i.Tag(), "i")
	}
	if got := i.Content(); got != "said Obi Wan" {
		t.Errorf("i Content() = %q, want %q", got, "said Obi Wan")
	}
	if parent, ok := i.Parent(); !ok || parent.ID() != div.ID() {
		t.Errorf("i Parent() = %v, %v; want div", parent.ID(), ok)
	}
	if got := root.Text(); got != "Hello there - said Obi Wan" {
		t.Errorf("Text() = %q", got)
	}
}

func TestParse_SoftHyphenStripped(t *testing.T) {
	markup := "<p>Znaj\u00addo\u00adwa\u00adłem się na polu.</p>"
	for name, parse := range map[string]func(string) (*Tree, error){"xhtml": Parse, "html": ParseHTML} {
		t.Run(name, func(t *testing.T) {
			tree, err := parse(markup)
			if err != nil {
				t.Fatalf("parse error = %v", err)
			}
			p, ok := tree.Root().Find("p")
			if !ok {
				t.Fatal("Find(p) ok = false")
			}
			if strings.Contains(p.Content(), softHyphen) {
				t.Errorf("Content() contains soft hyphen: %q", p.Content())
			}
			if got, want := p.Content(), "Znajdowałem się na polu."; got != want {
				t.Errorf("Content() = %q, want %q", got, want)
			}
		})
	}
}

func TestParse_TextAppendsAroundChildren(t *testing.T) {
	tree, err := Parse(`<p class="first  lead">one <b>two</b> three<br/>four</p>`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	p := tree.Root().Children()[0]
	if got := p.Content(); got != "one  threefour" {
		t.Errorf("Content() = %q, want %q", got, "one  threefour")
	}
	if !reflect.DeepEqual(p.Classes(), []string{"first", "lead"}) {
		t.Errorf("Classes() = %v, want [first lead]", p.Classes())
	}
	if !p.HasClass("lead") || p.HasClass("last") {
		t.Errorf("HasClass() mismatch for %v", p.Classes())
	}

	var tags []string
	for _, c := range p.Children() {
		tags = append(tags, c.Tag())
	}
	if !reflect.DeepEqual(tags, []string{"b", "br"}) {
		t.Errorf("children = %v, want [b br]", tags)
	}
}

func TestParse_Entities(t *testing.T) {
	tree, err := Parse(`<p>caf&eacute; &amp; more&hellip;</p>`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	p, _ := tree.Root().Find("p")
	if got, want := p.Content(), "café & more…"; got != want {
		t.Errorf("Content() = %q, want %q", got, want)
	}
}

func TestParse_DeclaredEncodingNotTranscodedTwice(t *testing.T) {
	tree, err := Parse(`<?xml version="1.0" encoding="ISO-8859-1"?><p>café</p>`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	p, _ := tree.Root().Find("p")
	if got, want := p.Content(), "café"; got != want {
		t.Errorf("Content() = %q, want %q", got, want)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		markup  string
		wantErr error
	}{
		{name: "mismatched end tag", markup: `<div><p>text</div>`, wantErr: ErrUnbalancedMarkup},
		{name: "stray end tag", markup: `</div>`, wantErr: ErrUnbalancedMarkup},
		{name: "unclosed element", markup: `<div><p>text</p>`, wantErr: ErrUnbalancedMarkup},
		{name: "bad attribute", markup: `<div a=></div>`, wantErr: ErrMalformedMarkup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.markup); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseHTML_Lenient(t *testing.T) {
	tree, err := ParseHTML(`<DIV class="x"><p>a<span>b</div>c</em><img src="i.png">d<br>`)
	if err != nil {
		t.Fatalf("ParseHTML() error = %v", err)
	}

	root := tree.Root()
	if got := root.Content(); got != "cd" {
		t.Errorf("root Content() = %q, want %q", got, "cd")
	}

	var tags []string
	for _, c := range root.Children() {
		tags = append(tags, c.Tag())
	}
	if !reflect.DeepEqual(tags, []string{"div", "img", "br"}) {
		t.Fatalf("root children = %v, want [div img br]", tags)
	}

	div := root.Children()[0]
	if !div.HasClass("x") {
		t.Errorf("div Classes() = %v, want [x]", div.Classes())
	}
	span, ok := div.Find("span")
	if !ok || span.Content() != "b" {
		t.Errorf("Find(span) = %q, %v; want \"b\"", span.Content(), ok)
	}
	if parent, _ := span.Parent(); parent.Tag() != "p" {
		t.Errorf("span parent = %q, want p", parent.Tag())
	}
}

func TestFindBody(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		wantOK bool
	}{
		{name: "body under root", markup: `<body><p>x</p></body>`, wantOK: true},
		{name: "body under html", markup: `<html><head><title>t</title></head><body><p>x</p></body></html>`, wantOK: true},
		{name: "no body", markup: `<div><section><body>deep</body></section></div>`, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(tt.markup)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			body, ok := FindBody(tree)
			if ok != tt.wantOK {
				t.Fatalf("FindBody() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && body.Tag() != BodyTag {
				t.Errorf("FindBody() Tag() = %q, want %q", body.Tag(), BodyTag)
			}
		})
	}
}

func TestNode_Walk(t *testing.T) {
	tree, err := Parse(`<a><b><c/></b><d/></a>`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if tree.Len() != 5 {
		t.Errorf("Len() = %d, want 5", tree.Len())
	}

	var order []string
	tree.Root().Walk(func(n Node) bool {
		order = append(order, n.Tag())
		return n.Tag() != "b"
	})
	if want := []string{RootTag, "a", "b", "d"}; !reflect.DeepEqual(order, want) {
		t.Errorf("Walk order = %v, want %v", order, want)
	}

	if _, ok := tree.Root().Find("c"); !ok {
		t.Error("Find(c) ok = false, want true")
	}
	if _, ok := tree.Root().Find("z"); ok {
		t.Error("Find(z) ok = true, want false")
	}
	if _, ok := tree.Root().Parent(); ok {
		t.Error("root Parent() ok = true, want false")
	}
}
