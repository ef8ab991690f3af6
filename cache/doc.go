// Package cache stores serialized validation results keyed by document
// content, so unchanged documents are not validated twice.
//
// Three implementations are provided: an in-process LRU with expiry
// (NewMemory), a shared Redis store (NewRedis) for service replicas, and Nop
// which never stores anything.
package cache
