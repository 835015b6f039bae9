// Package client talks to the JSON admin API of a ViUR backend.
//
// A Client holds one authenticated session (cookies are kept in a jar) and
// exposes the endpoints the admin tools need: login and security keys,
// paged listing and the structure description of a module, add and edit,
// the file tree, and the blob transfer endpoints of the dbtransfer module.
//
// Module endpoints live below the render prefix, e.g. /vi/customer/list.
// Blob transfer endpoints live at the host root.
//
// Transport failures and non-2xx answers are reported as SOURCE_UNAVAILABLE
// with method, url and status attached. Transport failures and 5xx answers
// are retried a bounded number of times.
package client
