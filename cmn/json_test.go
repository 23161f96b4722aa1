package cmn

import (
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

const testConfig = `{
  "basset.handles": "basset",
  "basset": {
    "compiling_path": "public/assets/compiled",
    "production_environment": null,
    "bundles": {"admin": "bundles/admin", "broken": 1}
  },
  "less": {"php": true},
  "basset.collections": {
    "app": [
      {"name": "reset", "file": "reset.css"},
      {"name": "app", "file": "app.js", "dependencies": ["jquery"]}
    ]
  }
}`

func Test_JSON_Lookup(t *testing.T) {
	j, err := JSONParse([]byte(testConfig))
	if err != nil {
		t.Fatal(err)
	}

	test.String(t, j.String("basset.handles"), "basset", "j.String(flat key)")
	test.String(t, j.String("basset.compiling_path"), "public/assets/compiled", "j.String(nested key)")
	test.That(t, j.Bool("less.php"), "j.Bool(less.php) | expected true")
	test.That(t, j.Has("basset.production_environment"), "j.Has(null key) | expected true")
	test.That(t, j.IsNull("basset.production_environment"), "j.IsNull(null key) | expected true")
	test.That(t, j.IsNull("basset.unknown"), "j.IsNull(missing key) | expected true")
	test.That(t, !j.Has("basset.unknown"), "j.Has(missing key) | expected false")

	bundles := j.StringMap("basset.bundles")
	test.That(t, len(bundles) == 1, "j.StringMap(basset.bundles) | expected non string values to be skipped")
	test.String(t, bundles["admin"], "bundles/admin", "j.StringMap(basset.bundles)[admin]")

	app := j.Object("basset.collections").Array("app")
	test.That(t, len(app) == 2, "j.Array(app) | expected 2 items")
	test.String(t, strings.Join(app[1].ArrayString("dependencies"), ","), "jquery", "item.ArrayString(dependencies)")
}

func Test_JSON_Syntax_Error_Position(t *testing.T) {
	_, err := JSONParse([]byte("{\n  \"basset.handles\": \"basset\",\n  oops\n}"))
	if err == nil {
		t.Fatal("JSONParse(invalid) | expect to receive error")
	}
	test.That(t, IsCode(err, "json.syntax"), "JSONParse(invalid) | expected json.syntax code, got "+err.Error())
	test.That(t, strings.Contains(err.Error(), "{ Line: "), "JSONParse(invalid) | expected a position, got "+err.Error())
}

func Test_JSON_Set(t *testing.T) {
	var j JSON
	j.Set("basset.handles", "assets")
	test.String(t, j.String("basset.handles"), "assets", "j.Set() then j.String()")
}
