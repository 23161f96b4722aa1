// Package asset resolves stylesheets and scripts into named collections and renders them as
// html tags, one per asset or a single tag for the compiled bundle of the collection.
//
//	b := asset.New(&asset.Options{Root: "/srv/app", PublicPath: "public", Handles: "basset"}, "local")
//	b.Collection("app", func(c *asset.Collection) {
//		c.Add("reset", "reset.css")
//		c.Add("jquery", "//code.jquery.com/jquery.js")
//		c.Add("app", "app.js", "jquery")
//	})
//	b.Show("app.js")
package asset
