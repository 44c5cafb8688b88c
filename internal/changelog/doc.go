// Package changelog derives a versioned, human-readable changelog from a
// repository's commit history and a previously generated changelog file.
//
// The pipeline is linear and runs once per invocation: collect and classify
// commits from the history provider, parse the existing file back into
// structured sections, filter out entries already recorded anywhere in
// history, assign semantic versions to the surviving sections, and write the
// merged result with new sections prepended.
//
// All state of record lives in the changelog file itself; nothing persists
// in memory between runs.
package changelog
