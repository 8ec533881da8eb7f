package news

import "tnfirefly-backend/lib/jsonstore"

// Store persists news.json.
type Store = jsonstore.Store[File]

func NewStore(path string) Store {
	return jsonstore.New(path, NewFile)
}
