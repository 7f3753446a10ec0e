package drafts

// Bridge adapts a loaded draft to the composer's host editor
// contract. The draft body is the canonical content; the composer
// borrows it at open and hands the result back at close.
type Bridge struct {
	draft *Draft
	dirty bool
}

func NewBridge(d *Draft) *Bridge {
	return &Bridge{draft: d}
}

func (b *Bridge) HTML() string {
	if b == nil || b.draft == nil {
		return ""
	}
	return b.draft.Body
}

func (b *Bridge) SetHTML(html string) {
	if b == nil || b.draft == nil {
		return
	}
	if b.draft.Body != html {
		b.draft.Body = html
		b.dirty = true
	}
}

// Focus is a no-op for a file-backed host; the contract requires the
// method, not a cursor.
func (b *Bridge) Focus() {}

// Dirty reports whether the composer changed the draft body.
func (b *Bridge) Dirty() bool {
	return b != nil && b.dirty
}
