// Package normalize converts raw fetched payloads of heterogeneous content
// types (HTML, JSON, XML, plain text, binary-as-text) into a single bounded
// text form suitable for agent consumption. It is a pure leaf component: no
// network, no persistence, and [Normalize] never returns an error.
package normalize
