package asset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/syntax-framework/basset/cmn"
	"github.com/tdewolff/test"
)

func testNames(assets []*Asset) string {
	var names []string
	for _, a := range assets {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

func Test_Collection_Add_Order(t *testing.T) {
	options := testPublic(t, map[string]string{
		"css/reset.css": "html{}",
		"css/app.css":   "body{}",
		"js/app.js":     "var app;",
		"js/jquery.js":  "var $;",
	})
	c := newCollection("app", "local", options)
	c.Add("reset", "reset.css").
		Add("jquery", "jquery.js").
		Add("missing", "missing.css").
		Add("image", "http://cdn.example.com/logo.png").
		Add("app-css", "app.css").
		Add("app", "app.js", "jquery").
		Add("cdn", "http://cdn.example.com/lib.js")

	test.String(t, testNames(c.Assets(Styles)), "reset, app-css", "collection.Assets(styles)")
	test.String(t, testNames(c.Assets(Scripts)), "jquery, app, cdn", "collection.Assets(scripts)")

	app, _ := c.Asset("app")
	test.String(t, strings.Join(app.Dependencies, ","), "jquery", "asset.Dependencies | recorded as given")

	// replacing keeps the position
	c.Add("jquery", "http://code.jquery.com/jquery.js")
	test.String(t, testNames(c.Assets(Scripts)), "jquery, app, cdn", "collection.Assets(scripts) after replace")
	jquery, _ := c.Asset("jquery")
	test.That(t, jquery.External(), "replaced asset | expected the external one")

	// a name moves between groups
	c.Add("reset", "app.js")
	test.String(t, testNames(c.Assets(Styles)), "app-css", "collection.Assets(styles) after move")
	test.String(t, testNames(c.Assets(Scripts)), "jquery, app, cdn, reset", "collection.Assets(scripts) after move")
}

func Test_Collection_Directory(t *testing.T) {
	options := testPublic(t, map[string]string{
		"vendor/bootstrap/bootstrap.css": "a{}",
		"css/app.css":                    "a{}",
	})
	c := newCollection("app", "local", options)
	c.Directory("vendor/bootstrap", func(c *Collection) {
		c.Add("bootstrap", "bootstrap.css")
	})
	c.Add("app", "app.css")

	test.String(t, testNames(c.Assets(Styles)), "bootstrap, app", "collection.Assets(styles)")
	bootstrap, _ := c.Asset("bootstrap")
	test.String(t, bootstrap.Directory, testReal(t, options, "public/vendor/bootstrap"), "asset.Directory")
	test.String(t, c.directory(), "", "collection.directory() | scope must be closed")
}

func Test_Collection_When(t *testing.T) {
	options := testPublic(t, map[string]string{"js/debug.js": "debugger;", "js/app.js": "var app;"})
	options.ProductionEnvironment = ProductionName("live")

	var tests = []struct {
		environment string
		expression  string
		output      string
	}{
		{"local", `environment != "production"`, "debug, app"},
		{"production", `environment != "production"`, "app"},
		{"live", `!production`, "app"},
		{"local", `!production`, "debug, app"},
		{"local", `environment ==`, "app"},
		{"local", `"yes"`, "debug, app"},
	}
	for _, tt := range tests {
		t.Run(tt.environment+" "+tt.expression, func(t *testing.T) {
			c := newCollection("app", tt.environment, options)
			c.When(tt.expression, func(c *Collection) {
				c.Add("debug", "debug.js")
			})
			c.Add("app", "app.js")
			test.String(t, testNames(c.Assets(Scripts)), tt.output, "collection.When(expression) | invalid assets")
		})
	}
}

func Test_Collection_CompiledName(t *testing.T) {
	options := testPublic(t, map[string]string{"css/app.css": "a{}", "js/app.js": "var a;"})
	c := newCollection("app", "local", options)
	c.Add("app", "app.css").Add("app-js", "app.js")

	name := c.CompiledName(Styles)
	test.That(t, strings.HasPrefix(name, "app-") && strings.HasSuffix(name, ".css"), "collection.CompiledName(styles) | invalid name "+name)
	test.That(t, len(name) == len("app-12345678.css"), "collection.CompiledName(styles) | invalid fingerprint "+name)
	test.That(t, strings.HasSuffix(c.CompiledName(Scripts), ".js"), "collection.CompiledName(scripts) | expected .js")
	test.String(t, c.CompiledName(Styles), name, "collection.CompiledName(styles) | must be stable")

	c.Add("other", "app.js")
	test.String(t, c.CompiledName(Styles), name, "collection.CompiledName(styles) | scripts must not change it")
	test.That(t, c.CompiledName(Scripts) != name, "collection.CompiledName(scripts) | expected another name")
}

func Test_Collection_Compile(t *testing.T) {
	options := testPublic(t, map[string]string{
		"css/reset.css": "html{margin:0}",
		"css/app.css":   "a{background:url(../img/a.png)}",
	})
	c := newCollection("app", "local", options)
	c.Add("reset", "reset.css").Add("app", "app.css").Add("font", "https://fonts.example.com/font.css")

	test.That(t, !c.IsCompiled(Styles), "collection.IsCompiled(styles) | expected false before compile")

	target, err := c.Compile(Styles)
	if err != nil {
		t.Fatal(err)
	}
	test.String(t, target, filepath.Join(options.CompilingDir(), c.CompiledName(Styles)), "collection.Compile(styles) | target")
	test.That(t, c.IsCompiled(Styles), "collection.IsCompiled(styles) | expected true after compile")

	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	test.String(t, string(content), "html{margin:0}\na{background:url(/img/a.png)}\n", "compiled bundle | invalid content")

	_, err = c.Compile(Scripts)
	test.That(t, cmn.IsCode(err, "collection.empty"), "collection.Compile(empty) | expected collection.empty error")
}

func Test_Collection_Compile_Less(t *testing.T) {
	options := testPublic(t, map[string]string{
		"css/reset.css": "html{margin:0}",
		"less/app.less": "@c: red;",
	})
	less := &fakeLess{}
	options.Less = less
	c := newCollection("app", "local", options)
	c.Add("reset", "reset.css").Add("app", "app.less")

	target, err := c.Compile(Styles)
	if err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	test.String(t, string(content), "html{margin:0}\n", "compiled bundle(less disabled) | raw less must be left out")

	options.LessEnabled = true
	target, err = c.Compile(Styles)
	if err != nil {
		t.Fatal(err)
	}
	content, err = os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	test.String(t, string(content), "html{margin:0}\n/* compiled */@c: red;\n", "compiled bundle(less enabled) | invalid content")

	only := newCollection("less", "local", options)
	only.Add("app", "app.less")
	options.LessEnabled = false
	_, err = only.Compile(Styles)
	test.That(t, cmn.IsCode(err, "collection.empty"), "collection.Compile(less only, disabled) | expected collection.empty error")
}
