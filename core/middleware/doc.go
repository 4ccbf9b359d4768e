// Package middleware groups the Fiber middleware of the command surface.
//
//   - auth: rejects requests without the configured API key.
//   - rayid: tags every request with a ray id (uuid) stored in the Fiber
//     locals and echoed in the X-Ray-ID response header.
package middleware
