// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

// Token is the type of the token most recently read by a Reader.
type Token byte

// Constants defining the valid Token values.
const (
	None         Token = iota // no token has been read
	StartObject               // left brace "{"
	EndObject                 // right brace "}"
	StartArray                // left square bracket "["
	EndArray                  // right square bracket "]"
	PropertyName              // object member name, including its ":"
	String                    // quoted string value
	Number                    // number value
	True                      // constant: true
	False                     // constant: false
	Null                      // constant: null
	Comment                   // comment: /* ... */ or // ...
)

var tokenStr = [...]string{
	None:         "none",
	StartObject:  `"{"`,
	EndObject:    `"}"`,
	StartArray:   `"["`,
	EndArray:     `"]"`,
	PropertyName: "property name",
	String:       "string",
	Number:       "number",
	True:         "true",
	False:        "false",
	Null:         "null",
	Comment:      "comment",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return "invalid token"
	}
	return tokenStr[v]
}
