// Package tables registers the dashboard's listings and adapts each
// generic datatable.Table to a non-generic Handle that the web layer and
// the export CLI can drive by string keys.
//
// # Registration
//
// Listings register themselves from init, the same way for every table:
//
//	func init() {
//	    Register(Definition{
//	        Key:   "negocios",
//	        Title: "Negocios",
//	        Mount: mountBusinesses,
//	    })
//	}
//
// # Mounting
//
// A Definition is a template. Mount creates an independent table instance
// with its own search, sort, page and selection state; the session layer
// mounts one instance per visitor and table. Handles are not safe for
// concurrent use; callers serialize access.
//
// # Notices
//
// Engine hooks (row click, export, selection change) are forwarded to
// Env.Notify as Notices. The web layer turns pending notices into toast
// events on the next response.
package tables
