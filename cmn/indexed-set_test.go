package cmn

import (
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func Test_IndexedSet_Order(t *testing.T) {
	set := &IndexedSet[string]{}
	test.That(t, set.IsEmpty(), "set.IsEmpty() | expected empty set")

	for _, name := range []string{"reset", "app", "theme", "app"} {
		set.Add(name)
	}

	test.That(t, set.Cardinality() == 3, "set.Cardinality() | expected 3")
	test.String(t, strings.Join(set.ToArray(), ","), "reset,app,theme", "set.ToArray() | invalid order")
	test.That(t, set.GetIndex("theme") == 2, "set.GetIndex(theme) | expected 2")
	test.That(t, set.GetIndex("missing") == -1, "set.GetIndex(missing) | expected -1")

	test.That(t, set.Remove("app"), "set.Remove(app) | expected true")
	test.That(t, !set.Remove("app"), "set.Remove(app) twice | expected false")
	test.String(t, strings.Join(set.ToArray(), ","), "reset,theme", "set.ToArray() after remove")
	test.That(t, set.GetIndex("theme") == 1, "set.GetIndex(theme) after remove | expected 1")
	test.That(t, !set.Contains("app"), "set.Contains(app) | expected false")
}
