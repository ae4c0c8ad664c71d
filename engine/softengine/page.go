// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package softengine

import (
	"errors"
	"io/fs"
	"path"
	"regexp"
	"strings"
)

// defaultPage is served when the content root has no start page.
const defaultPage = `<!doctype html>
<title>webui</title>
<script>
document.setBackground("#20232a");
document.addLabel("title", 20, 20, "webui software engine");
document.addLabel("hint", 20, 44, "No start page found in the content root.");
document.addButton("ping", 20, 80, 120, 32, "Ping");
window.onClick = function (id) {
	if (id === "ping" && window.webUIMessage) {
		webUIMessage.pushMessageToGame("ping", "");
	}
};
</script>
`

var scriptTag = regexp.MustCompile(`(?is)<script[^>]*>(.*?)</script\s*>`)

// pageScripts returns the inline scripts of an HTML page in document
// order. A page without script tags and without markup is one script.
func pageScripts(page string) []string {
	matches := scriptTag.FindAllStringSubmatch(page, -1)
	if len(matches) == 0 {
		if strings.HasPrefix(strings.TrimSpace(page), "<") {
			return nil
		}
		return []string{page}
	}
	scripts := make([]string, 0, len(matches))
	for _, m := range matches {
		scripts = append(scripts, m[1])
	}
	return scripts
}

// readPage loads name from root. It reports fallback when the built-in
// page was used instead.
func readPage(root fs.FS, name string) (page string, fallback bool, err error) {
	if root == nil {
		return defaultPage, true, nil
	}
	if name == "" {
		name = "index.html"
	}
	name = path.Clean(strings.TrimPrefix(name, "/"))
	data, err := fs.ReadFile(root, name)
	switch {
	case err == nil:
		return string(data), false, nil
	case errors.Is(err, fs.ErrNotExist):
		return defaultPage, true, nil
	default:
		return "", false, err
	}
}
