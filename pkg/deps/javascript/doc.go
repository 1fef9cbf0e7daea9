// Package javascript extracts dependencies from npm package.json manifests.
//
// The four dependency objects map to the four record types:
//
//	dependencies          production
//	devDependencies       dev
//	peerDependencies      peer
//	optionalDependencies  optional
//
// Records are emitted section by section in that order, and within a
// section in the key order of the file. Version values are kept verbatim;
// non-string values keep their JSON literal text.
//
// yarn.lock and pnpm-lock.yaml are registered without an extractor so the
// analyzer can still report yarn or pnpm as the package manager.
package javascript
