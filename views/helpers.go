package views

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/AdamBeresnev/movie-kombat/internal/bracket"
	"github.com/a-h/templ"
)

// htmlWriter keeps the first write error so components can write unconditionally.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) rawf(format string, args ...any) {
	h.raw(fmt.Sprintf(format, args...))
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) component(ctx context.Context, c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(ctx, h.w)
}

// attr writes a double quoted attribute. The value is escaped for HTML only, so it
// must already be valid in its own context (JSON, URL path).
func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="`)
	h.text(value)
	h.raw(`"`)
}

func (h *htmlWriter) hxVals(vals map[string]string) {
	if h.err != nil {
		return
	}
	payload, err := templ.JSONString(vals)
	if err != nil {
		h.err = err
		return
	}
	h.attr("hx-vals", payload)
}

func candidatePath(id string) string {
	return "/candidates/" + url.PathEscape(id)
}

func esc(s string) string {
	return templ.EscapeString(s)
}

func cellClass(c MatchCell, e bracket.Entry) string {
	switch {
	case e.IsPlaceholder():
		return "slot slot-tbd"
	case c.WinnerID == "":
		return "slot"
	case c.WinnerID == e.ID:
		return "slot slot-winner"
	}
	return "slot slot-loser"
}
