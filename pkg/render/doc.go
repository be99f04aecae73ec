// Package render turns vdom trees into HTML for serving formkit's
// example form components.
//
// Text nodes are HTML-escaped. Raw nodes are run through a bluemonday
// sanitizer policy, so user-provided rich text cannot inject script. The
// renderer is stateless apart from its configuration and safe for
// concurrent use.
package render
