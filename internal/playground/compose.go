// Package playground turns HTML, CSS and JavaScript snippets into preview
// documents.
package playground

import (
	"bytes"
	"strings"
	"text/template"
)

// Snippet is the content of the three playground editors.
type Snippet struct {
	HTML       string `json:"html"`
	CSS        string `json:"css"`
	JavaScript string `json:"javascript"`
}

// Empty reports whether every editor is blank.
func (s Snippet) Empty() bool {
	return strings.TrimSpace(s.HTML+s.CSS+s.JavaScript) == ""
}

// Snippets are spliced in verbatim; the preview runs in a sandboxed frame.
var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<style>{{.CSS}}</style>
</head>
<body>
{{.HTML}}
<script>
try {
{{.JavaScript}}
} catch (error) {
  console.error('JavaScript Error:', error);
  parent.postMessage({type: 'error', message: error.message}, '*');
}
</script>
</body>
</html>
`))

// Compose builds the full preview document for s. Script errors are caught
// inside the page and relayed to the parent window as
// {type: "error", message}.
func Compose(s Snippet) string {
	var b bytes.Buffer
	// Executing a parsed template into a buffer with string fields cannot fail.
	_ = pageTmpl.Execute(&b, s)
	return b.String()
}

// Kind is the language a single code block is written in.
type Kind int

const (
	KindUnknown Kind = iota
	KindJavaScript
	KindHTML
	KindCSS
)

func (k Kind) String() string {
	switch k {
	case KindJavaScript:
		return "javascript"
	case KindHTML:
		return "html"
	case KindCSS:
		return "css"
	default:
		return "unknown"
	}
}

var jsMarkers = []string{
	"console.log", "alert", "function", "let ", "const ", "var ", "document.", "window.",
}

// Classify guesses the language of a lesson code block. JavaScript markers
// are checked first, so inline scripts inside markup count as JavaScript.
func Classify(code string) Kind {
	for _, m := range jsMarkers {
		if strings.Contains(code, m) {
			return KindJavaScript
		}
	}
	switch {
	case strings.Contains(code, "<"):
		return KindHTML
	case strings.Contains(code, "{") && strings.Contains(code, "}"):
		return KindCSS
	default:
		return KindUnknown
	}
}

// IsExecutable reports whether a code block gets a live preview. Unlike
// Classify it ignores "window." and treats braces alone as not runnable.
func IsExecutable(code string) bool {
	if strings.Contains(code, "<") {
		return true
	}
	for _, m := range jsMarkers {
		if m != "window." && strings.Contains(code, m) {
			return true
		}
	}
	return false
}

var consoleTmpl = template.Must(template.New("console").Parse(`<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: Arial, sans-serif; padding: 20px; }
.output { background: #f5f5f5; padding: 10px; border-radius: 5px; margin: 10px 0; }
.error { color: red; }
</style>
</head>
<body>
<div id="output"></div>
<script>
const output = document.getElementById('output');
const originalLog = console.log;
const originalError = console.error;
console.log = function(...args) {
  const div = document.createElement('div');
  div.className = 'output';
  div.textContent = args.join(' ');
  output.appendChild(div);
  originalLog.apply(console, args);
};
console.error = function(...args) {
  const div = document.createElement('div');
  div.className = 'output error';
  div.textContent = 'Error: ' + args.join(' ');
  output.appendChild(div);
  originalError.apply(console, args);
};
try {
{{.}}
} catch (error) {
  console.error(error.message);
}
</script>
</body>
</html>
`))

var cssSampleTmpl = template.Must(template.New("css").Parse(`<!DOCTYPE html>
<html>
<head>
<style>
{{.}}
body { font-family: Arial, sans-serif; padding: 20px; }
</style>
</head>
<body>
<h3>CSS preview</h3>
<div class="example">Sample text with your styles applied</div>
<p>Use this area to check the effect of your CSS.</p>
</body>
</html>
`))

// ComposeSingle builds a preview for one lesson code block: JavaScript runs
// with console output captured into the page, HTML is returned as is, and
// CSS is applied to a small sample page. Unknown code yields "".
func ComposeSingle(code string) string {
	var tmpl *template.Template
	switch Classify(code) {
	case KindJavaScript:
		tmpl = consoleTmpl
	case KindHTML:
		return code
	case KindCSS:
		tmpl = cssSampleTmpl
	default:
		return ""
	}
	var b bytes.Buffer
	_ = tmpl.Execute(&b, code)
	return b.String()
}
