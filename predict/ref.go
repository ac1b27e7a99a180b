package predict

import "github.com/google/uuid"

func newReferenceID() string {
	return uuid.NewString()
}
