// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Authcore Contributors

package auth

// HistoryWindow is the number of most recent reset records consulted when
// rejecting password reuse.
const HistoryWindow = 5

// HistoryGuard rejects a candidate password that matches the current hash
// or any hash in the recent reset history. Pure function, no side effects.
type HistoryGuard struct {
	verifier *Verifier
}

// NewHistoryGuard creates a HistoryGuard using verifier for comparisons.
func NewHistoryGuard(verifier *Verifier) *HistoryGuard {
	return &HistoryGuard{verifier: verifier}
}

// IsReused reports whether candidate matches currentHash or any modern
// hash among history. History entries in legacy format are skipped: this
// component cannot evaluate an unspecified algorithm safely, and a false
// rejection would lock the user out of a legitimate password.
func (g *HistoryGuard) IsReused(candidate, currentHash string, history []string) bool {
	if g.verifier.Matches(candidate, currentHash) {
		return true
	}
	for _, h := range history {
		if h == "" || !IsModernHash(h) {
			continue
		}
		if g.verifier.Matches(candidate, h) {
			return true
		}
	}
	return false
}

// HistoryHashes flattens reset records into the hash list consulted by
// IsReused, newest-first, old hash before new hash within a record.
func HistoryHashes(records []*ResetRecord) []string {
	hashes := make([]string, 0, len(records)*2)
	for _, rec := range records {
		hashes = append(hashes, rec.OldPasswordHash)
		if rec.NewPasswordHash != nil {
			hashes = append(hashes, *rec.NewPasswordHash)
		}
	}
	return hashes
}
