package vdom

import (
	"strings"

	"github.com/vango-dev/assetref/pkg/resource"
)

// attr creates a string Attr with the given key and value.
func attr(key, value string) Attr {
	return Attr{Key: key, Value: Str(value)}
}

// boolAttr creates a bare attribute.
func boolAttr(key string) Attr {
	return Attr{Key: key, Value: Null}
}

// StringAttr creates an attribute with an arbitrary name and string value.
func StringAttr(key, value string) Attr { return attr(key, value) }

// BoolAttr creates a bare attribute with an arbitrary name.
func BoolAttr(key string) Attr { return boolAttr(key) }

// AssetAttr creates an attribute holding an already resolved resource.
// Elements built with it are path-carrying and must go through path
// rendering before serialization.
func AssetAttr(key string, h resource.Handle) Attr {
	return Attr{Key: key, Value: Res(h, "")}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute (named to avoid conflict with Style element).
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// TitleAttr sets the title attribute (named to avoid conflict with Title element).
func TitleAttr(title string) Attr { return attr("title", title) }

// Lang sets the lang attribute.
func Lang(lang string) Attr { return attr("lang", lang) }

// Link attributes

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Rel sets the rel attribute.
func Rel(rel string) Attr { return attr("rel", rel) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Media attributes

// Src sets the src attribute.
func Src(url string) Attr { return attr("src", url) }

// Alt sets the alt attribute.
func Alt(text string) Attr { return attr("alt", text) }

// Srcset sets the srcset attribute.
func Srcset(srcset string) Attr { return attr("srcset", srcset) }

// Poster sets the poster attribute.
func Poster(url string) Attr { return attr("poster", url) }

// Meta attributes

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Charset sets the charset attribute.
func Charset(charset string) Attr { return attr("charset", charset) }

// Content sets the content attribute.
func Content(content string) Attr { return attr("content", content) }

// Script attributes

// Defer_ sets the defer attribute.
func Defer_() Attr { return boolAttr("defer") }

// Async sets the async attribute.
func Async() Attr { return boolAttr("async") }

// Crossorigin sets the crossorigin attribute.
func Crossorigin(value string) Attr { return attr("crossorigin", value) }

// Integrity sets the integrity attribute.
func Integrity(value string) Attr { return attr("integrity", value) }

// Conditional attributes

// ClassIf returns a class attribute if condition is true.
func ClassIf(condition bool, class string) Attr {
	if condition {
		return Class(class)
	}
	return Attr{}
}

// AttrIf returns the attribute if condition is true.
func AttrIf(condition bool, a Attr) Attr {
	if condition {
		return a
	}
	return Attr{}
}
