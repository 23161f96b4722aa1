// Package styles holds the stylesheet collaborators of the asset pipeline: the URI rewriter that
// fixes relative url() references of a stylesheet served from another location, and the LESS
// compiler used when server side compilation is enabled.
package styles
