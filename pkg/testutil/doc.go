// Package testutil provides utilities for testing viur components.
//
// Key components:
//   - FakeBackend: an httptest server speaking the backend's JSON protocol
//     (login, skey, structure, paged lists, add/edit, file trees, blobs)
//   - filesystem helpers working on any afero.Fs, usually a MemMapFs
//
// All test data should be defined inline, not in external files.
package testutil
