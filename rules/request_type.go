package rules

// RequestType is the classification of the resource being requested, as
// reported by the request pipeline.
type RequestType uint32

// RequestType values.
const (
	TypeDocument RequestType = iota + 1
	TypeSubdocument
	TypeStylesheet
	TypeScript
	TypeImage
	TypeFont
	TypeObject
	TypeXMLHTTPRequest
	TypePing
	TypeCSP
	TypeMedia
	TypeWebSocket
	TypeOther
)

// typeOptions is the mapping between request types and the type bits of the
// rule option set.  TypeOther has no bit of its own:  a rule with any type
// bits set never matches it.
var typeOptions = map[RequestType]Option{
	TypeDocument:       OptionDocument,
	TypeSubdocument:    OptionSubdocument,
	TypeStylesheet:     OptionStylesheet,
	TypeScript:         OptionScript,
	TypeImage:          OptionImage,
	TypeFont:           OptionFont,
	TypeObject:         OptionObject,
	TypeXMLHTTPRequest: OptionXMLHTTPRequest,
	TypePing:           OptionPing,
	TypeCSP:            OptionCSP,
	TypeMedia:          OptionMedia,
	TypeWebSocket:      OptionWebSocket,
}

// String implements the [fmt.Stringer] interface for RequestType.
func (t RequestType) String() (s string) {
	switch t {
	case TypeDocument:
		return "document"
	case TypeSubdocument:
		return "subdocument"
	case TypeStylesheet:
		return "stylesheet"
	case TypeScript:
		return "script"
	case TypeImage:
		return "image"
	case TypeFont:
		return "font"
	case TypeObject:
		return "object"
	case TypeXMLHTTPRequest:
		return "xmlhttprequest"
	case TypePing:
		return "ping"
	case TypeCSP:
		return "csp"
	case TypeMedia:
		return "media"
	case TypeWebSocket:
		return "websocket"
	case TypeOther:
		return "other"
	default:
		return "unknown"
	}
}

// RequestTypeFromString returns the request type named by s.  Unrecognized
// names map to [TypeOther].
func RequestTypeFromString(s string) (t RequestType) {
	switch s {
	case "document", "doc":
		return TypeDocument
	case "subdocument", "frame":
		return TypeSubdocument
	case "stylesheet", "css":
		return TypeStylesheet
	case "script":
		return TypeScript
	case "image", "img":
		return TypeImage
	case "font":
		return TypeFont
	case "object":
		return TypeObject
	case "xmlhttprequest", "xhr":
		return TypeXMLHTTPRequest
	case "ping":
		return TypePing
	case "csp":
		return TypeCSP
	case "media":
		return TypeMedia
	case "websocket":
		return TypeWebSocket
	default:
		return TypeOther
	}
}
