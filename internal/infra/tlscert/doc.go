// Package tlscert provides server certificates for TLS listeners.
//
//   - keypair.go: key pair loading, server tls.Config, self-signed
//     certificate generation for development
//   - watcher.go: certificate hot-reload via fsnotify
//   - set.go: one watcher per distinct cert/key pair across listeners
//
// A certificate that fails to load at startup is an error. A certificate
// that fails to reload later is logged and the previous one keeps serving.
package tlscert
