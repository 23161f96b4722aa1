package asset

import (
	"bytes"
	"html/template"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Html include tag of a stylesheet or script
type Html struct {
	Group     Group
	Extension string
	Path      string
}

func (h Html) node() *html.Node {
	if h.Group == Styles {
		rel := "stylesheet"
		if h.Extension == "less" {
			rel = "stylesheet/less"
		}
		return &html.Node{
			Type:     html.ElementNode,
			Data:     "link",
			DataAtom: atom.Link,
			Attr: []html.Attribute{
				{Key: "rel", Val: rel},
				{Key: "type", Val: "text/css"},
				{Key: "href", Val: h.Path},
			},
		}
	}
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "script",
		DataAtom: atom.Script,
		Attr: []html.Attribute{
			{Key: "type", Val: "text/javascript"},
			{Key: "src", Val: h.Path},
		},
	}
}

func (h Html) String() string {
	buf := &bytes.Buffer{}
	if err := html.Render(buf, h.node()); err != nil {
		return "<!-- Basset could not render " + template.HTMLEscapeString(h.Path) + " -->"
	}
	return buf.String()
}

func (h Html) HTML() template.HTML {
	return template.HTML(h.String())
}
