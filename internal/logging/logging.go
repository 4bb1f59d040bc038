// Package logging configures the process-wide apex/log handler.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
)

// Setup installs a text or json handler on w and sets the level. Unknown
// levels fall back to info.
func Setup(level, format string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	switch strings.ToLower(format) {
	case "json":
		log.SetHandler(json.New(w))
	default:
		log.SetHandler(text.New(w))
	}

	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
