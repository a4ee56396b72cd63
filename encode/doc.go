// Package encode renders form snapshots as indented text.
//
// The encoder walks a snapshot the same way the facade does, writing
// map fields in sorted order so output is deterministic. Colors are
// opt-in via EncodeColors or ColorsFor; paths recorded by an access
// log may be passed with Accessed to mark the fields a session read.
package encode
