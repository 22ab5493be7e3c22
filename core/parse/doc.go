// Package parse turns raw language-model text into structured values.
//
// Models often wrap JSON in markdown code fences, so [StripCodeFences]
// removes the fence markers first. [Object] then decodes a single JSON object
// into the caller's type and reports failure as an error rather than a
// panic or a zero value. Decoding is strict by default; [WithRepair] enables
// a recovery pass through jsonrepair (Python constants, comments, trailing
// commas, truncated output) and unwrapping of schema-style
// {"type": ..., "value": ...} envelopes.
package parse
