package compose

// HostEditor is the narrow contract to the surrounding application's
// primary editor. The session borrows its content at open and hands
// the preview result back at close; it never assumes the bridge is
// present and degrades to no-op at every call site.
type HostEditor interface {
	HTML() string
	SetHTML(string)
	Focus()
}
