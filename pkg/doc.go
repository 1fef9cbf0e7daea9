// Package pkg holds the Repolens libraries.
//
// Data flows in three stages, orchestrated by [pipeline]:
//
//	GitHub / GitLab / local directory
//	         ↓
//	    [source] snapshot (file listing + manifest contents)
//	         ↓
//	    [analyzer] language, package manager, dependencies, structure
//	         ↓
//	    [readme] / [render/nodelink] / JSON report
//
// Supporting packages:
//   - [deps]: manifest registry and per-ecosystem extractors
//   - [integrations]: GitHub and GitLab REST clients
//   - [cache]: file, memory and Redis caches shared by the clients and pipeline
//   - [errors]: coded errors and input validation
//   - [observability]: pipeline hooks and Prometheus metrics
//   - [buildinfo]: version information
package pkg
