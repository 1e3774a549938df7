package gateway

import (
	"path/filepath"
	"testing"
)

func TestOpenSelectsBackend(t *testing.T) {
	gw, done := Open("http://127.0.0.1:1/api/liveheart/save", "")
	defer done()
	if _, ok := gw.(*Client); !ok {
		t.Errorf("Open(url) = %T, want *Client", gw)
	}

	gw, done = Open("", filepath.Join(t.TempDir(), "shares.db"))
	defer done()
	if _, ok := gw.(*Local); !ok {
		t.Errorf("Open(path) = %T, want *Local", gw)
	}

	gw, done = Open("", "")
	defer done()
	if gw != nil {
		t.Errorf("Open with no backend = %T, want nil", gw)
	}
}
