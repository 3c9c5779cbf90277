// Copyright © 2025 Tilecast contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package emoji

import (
	"testing"

	"tilecast/action"
)

func TestBuildIndexSearchable(t *testing.T) {
	ix := BuildIndex()
	if ix.Len() == 0 {
		t.Fatalf("expected a populated emoji index")
	}

	got := ix.SearchPrefix("thumbs-up")
	if len(got) == 0 {
		t.Fatalf("expected a match for thumbs-up")
	}
	copy, ok := got[0].Action.(action.CopyText)
	if !ok {
		t.Fatalf("expected CopyText action, got %T", got[0].Action)
	}
	if copy.Text == "" {
		t.Fatalf("expected an emoji character to copy")
	}
}
