package styles

import (
	"bytes"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/syntax-framework/basset/cmn"
	"github.com/tdewolff/parse/v2"
	parsecss "github.com/tdewolff/parse/v2/css"
)

var errorRewriteLexer = cmn.Err(
	"styles.rewrite",
	"Unable to tokenize the stylesheet", "Directory: %s", "Caused by: %s",
)

var schemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.\-]*:`)

// URIRewriter fixes the relative references of a stylesheet located at currentDir
type URIRewriter interface {
	Rewrite(code []byte, currentDir string, documentRoot string, symlinks map[string]string) ([]byte, error)
}

// Rewriter rewrites relative url() and @import references into document root relative paths.
//
// url(../img/logo.png) inside /var/www/public/css/app.css with document root /var/www/public
// becomes url(/img/logo.png).
type Rewriter struct{}

func (Rewriter) Rewrite(code []byte, currentDir string, documentRoot string, symlinks map[string]string) ([]byte, error) {
	out := &bytes.Buffer{}
	out.Grow(len(code))

	lexer := parsecss.NewLexer(parse.NewInputBytes(code))
	afterImport := false
	for {
		tt, text := lexer.Next()
		switch tt {
		case parsecss.ErrorToken:
			if err := lexer.Err(); err != nil && err != io.EOF {
				return nil, errorRewriteLexer(currentDir, err)
			}
			return out.Bytes(), nil
		case parsecss.URLToken:
			out.WriteString(rewriteURLToken(string(text), currentDir, documentRoot, symlinks))
			afterImport = false
			continue
		case parsecss.AtKeywordToken:
			out.Write(text)
			afterImport = strings.EqualFold(string(text), "@import")
			continue
		case parsecss.StringToken:
			if afterImport {
				out.WriteString(rewriteString(string(text), currentDir, documentRoot, symlinks))
				afterImport = false
				continue
			}
		case parsecss.WhitespaceToken, parsecss.CommentToken:
			out.Write(text)
			continue
		}
		afterImport = false
		out.Write(text)
	}
}

// rewriteURLToken url( "a.png" ) => url("/css/a.png")
func rewriteURLToken(token string, currentDir, documentRoot string, symlinks map[string]string) string {
	if len(token) < 5 || !strings.HasSuffix(token, ")") {
		return token
	}
	inner := strings.TrimSpace(token[4 : len(token)-1])
	quote := ""
	if len(inner) >= 2 && (inner[0] == '"' || inner[0] == '\'') && inner[len(inner)-1] == inner[0] {
		quote = inner[:1]
		inner = inner[1 : len(inner)-1]
	}
	if !IsRelative(inner) {
		return token
	}
	return "url(" + quote + rewritePath(inner, currentDir, documentRoot, symlinks) + quote + ")"
}

func rewriteString(token string, currentDir, documentRoot string, symlinks map[string]string) string {
	if len(token) < 2 {
		return token
	}
	quote := token[:1]
	inner := token[1 : len(token)-1]
	if !IsRelative(inner) {
		return token
	}
	return quote + rewritePath(inner, currentDir, documentRoot, symlinks) + quote
}

// IsRelative true for references resolved against the stylesheet location
func IsRelative(uri string) bool {
	if uri == "" || strings.HasPrefix(uri, "/") || strings.HasPrefix(uri, "#") {
		return false
	}
	return !schemeRe.MatchString(uri)
}

func rewritePath(uri string, currentDir, documentRoot string, symlinks map[string]string) string {
	suffix := ""
	if sep := strings.IndexAny(uri, "?#"); sep >= 0 {
		suffix = uri[sep:]
		uri = uri[:sep]
	}

	p := filepath.ToSlash(filepath.Join(currentDir, filepath.FromSlash(uri)))

	// the file lives behind a symlink, point back to the link of the deepest target
	link, target := "", ""
	for l, t := range symlinks {
		t = strings.TrimSuffix(filepath.ToSlash(t), "/")
		if t != "" && len(t) > len(target) && hasPathPrefix(p, t) {
			link, target = filepath.ToSlash(l), t
		}
	}
	if target != "" {
		p = link + p[len(target):]
	}

	if root := strings.TrimSuffix(filepath.ToSlash(documentRoot), "/"); root != "" && hasPathPrefix(p, root) {
		p = p[len(root):]
	}

	p = path.Clean("/" + p)
	if strings.HasSuffix(uri, "/") && p != "/" {
		p += "/"
	}
	return p + suffix
}

// hasPathPrefix prefix matches whole path segments only, /srv/public is not a prefix of /srv/public2
func hasPathPrefix(p, prefix string) bool {
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}
