package rules

// Option is the bit-flag set of network rule modifiers.  The type bits select
// the request types the rule applies to; the rest change how or whether the
// rule applies.  The bit layout is part of the on-the-wire compatibility with
// existing public filter lists and must not be reordered.
type Option uint32

// Option bits.
const (
	OptionScript Option = 1 << iota
	OptionImage
	OptionStylesheet
	OptionObject
	OptionXMLHTTPRequest
	OptionSubdocument
	OptionDocument
	OptionFont
	OptionMedia
	OptionWebSocket
	OptionPing
	OptionCSP

	OptionThirdParty
	OptionMatchCase
	OptionImportant
	OptionPopup
	OptionGenericHide
	OptionGenericBlock
	OptionInlineScript
	OptionInlineFont
	OptionBadfilter
	OptionRedirect
	OptionRedirectRule
	OptionRemoveParam
	OptionHeader
	OptionFirstParty
)

// OptionTypeMask covers all request-type bits.  A rule with none of these set
// matches every request type.
const OptionTypeMask = OptionScript | OptionImage | OptionStylesheet |
	OptionObject | OptionXMLHTTPRequest | OptionSubdocument | OptionDocument |
	OptionFont | OptionMedia | OptionWebSocket | OptionPing | OptionCSP

// Has returns true if all bits of o2 are set in o.
func (o Option) Has(o2 Option) (ok bool) {
	return o&o2 == o2
}

// optionFromKey returns the option bit for a plain (valueless) option key, or
// zero if the key does not name one.
func optionFromKey(key string) (o Option) {
	switch key {
	case "script":
		return OptionScript
	case "image", "img":
		return OptionImage
	case "stylesheet", "css":
		return OptionStylesheet
	case "object":
		return OptionObject
	case "xmlhttprequest", "xhr":
		return OptionXMLHTTPRequest
	case "subdocument", "frame":
		return OptionSubdocument
	case "document", "doc":
		return OptionDocument
	case "font":
		return OptionFont
	case "media":
		return OptionMedia
	case "websocket":
		return OptionWebSocket
	case "ping":
		return OptionPing
	case "csp":
		return OptionCSP
	case "third-party", "3p":
		return OptionThirdParty
	case "first-party", "1p":
		return OptionFirstParty
	case "match-case":
		return OptionMatchCase
	case "important":
		return OptionImportant
	case "popup":
		return OptionPopup
	case "generichide":
		return OptionGenericHide
	case "genericblock":
		return OptionGenericBlock
	case "inline-script":
		return OptionInlineScript
	case "inline-font":
		return OptionInlineFont
	case "badfilter":
		return OptionBadfilter
	default:
		return 0
	}
}
