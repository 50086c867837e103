// Package filecache keeps the supporting documents a customer staged for an
// order: it validates selections, persists them base64-encoded to the local
// database so they survive restarts, and materializes image previews as
// temporary files on demand.
//
// The cache never talks to the backend; uploading staged files is an explicit
// checkout-flow step owned elsewhere.
package filecache
