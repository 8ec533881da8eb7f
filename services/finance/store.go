package finance

import "tnfirefly-backend/lib/jsonstore"

// Store persists finance.json.
type Store = jsonstore.Store[File]

func NewStore(path string) Store {
	return jsonstore.New(path, NewFile)
}
