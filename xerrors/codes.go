package xerrors

// Code spaces:
//
//	[0, 999]: common errors
//	[1000, 1999]: decode errors
//	[2000, 2999]: encode errors
const (
	// CodeUnknown is the code of errors created without an explicit code.
	CodeUnknown = -1

	// common errors: [0, 999]
	CodeNilContainer   = 1 // wrap target is nil
	CodeWrongContainer = 2 // wrap target is not a supported container type
	CodeUnknownFormat  = 3 // no codec registered for the wire format

	// decode errors: [1000, 1999]
	CodeDecodeSyntax   = 1000 // document text is malformed
	CodeDecodeRootKind = 1001 // document root is not an object
	CodeDecodeKeyKind  = 1002 // mapping key is not a string

	// encode errors: [2000, 2999]
	CodeEncodeType    = 2000 // value type has no wire representation
	CodeEncodeNumber  = 2001 // number has no wire representation (NaN, Inf)
	CodeEncodeKeyKind = 2002 // container key is not a string
)

// Keys for the `|key: value` detail segments.
const (
	KeyReason = "Reason" // failure reason
	KeyFormat = "Format" // wire format name
	KeyType   = "Type"   // runtime type of the offending value
	KeyKey    = "Key"    // container or mapping key
	KeyValue  = "Value"  // offending value
)
