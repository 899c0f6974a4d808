package ports

// CallDirectory maps a voice bridge connection to the call it carries, for
// function calls that arrive without an explicit call SID.
type CallDirectory interface {
	Bind(connectionID, callSID string)
	Unbind(connectionID string)
	Lookup(connectionID string) (string, bool)
}
