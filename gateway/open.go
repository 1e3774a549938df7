package gateway

import (
	"log"

	"github.com/lixenwraith/liveheart/store/sqlite"
)

// Open picks the remote client when saveURL is set, otherwise a local sqlite store at storePath
// A store that cannot be opened returns a nil backend; saving and replay stay disabled
func Open(saveURL, storePath string) (Backend, func()) {
	if saveURL != "" {
		log.Printf("gateway: remote %s", saveURL)
		return NewClient(saveURL), func() {}
	}
	st, err := sqlite.Open(storePath)
	if err != nil {
		log.Printf("gateway: local store unavailable, saving disabled: %v", err)
		return nil, func() {}
	}
	log.Printf("gateway: local store %s", storePath)
	return NewLocal(st, sqlite.NewSlug), func() {
		if err := st.Close(); err != nil {
			log.Printf("gateway: close store: %v", err)
		}
	}
}
