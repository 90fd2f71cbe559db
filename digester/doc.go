// Package digester keeps SHA256 sidecar digests next to generated files.
// A ".digest" file records the digest of the content last written, so a
// rerun that would produce identical output can leave the file untouched.
package digester
