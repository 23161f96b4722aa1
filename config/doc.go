// Package config loads basset.json into asset options.
//
// The file is a JSON object whose keys follow the "file.key" convention, written flat or nested:
//
//	{
//	  "basset.production_environment": "production",
//	  "basset.compiling_path": "public/assets/compiled",
//	  "basset.handles": "basset",
//	  "basset.collections": {
//	    "app": [
//	      {"name": "reset", "file": "reset.css"},
//	      {"name": "jquery", "file": "http://code.jquery.com/jquery.js"},
//	      {"name": "app", "file": "app.js", "dependencies": ["jquery"]},
//	      {"name": "debug", "file": "debug.js", "when": "environment != \"production\""}
//	    ]
//	  },
//	  "less": {"php": false}
//	}
//
// Scalar keys can be overridden by environment variables named after the key in screaming snake
// case: basset.compiling_path is read from BASSET_COMPILING_PATH.
package config
