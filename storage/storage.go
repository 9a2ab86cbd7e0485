package storage

import (
	"context"
	"errors"
)

// ErrDocumentNotFound возвращается, когда документ ещё ни разу не записывался.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore хранит именованные JSON-документы целиком: чтение и запись
// всегда затрагивают документ полностью.
type DocumentStore interface {
	Read(ctx context.Context, name string) ([]byte, error)

	// Write заменяет документ. Неудачная запись не должна оставлять
	// частично записанный документ.
	Write(ctx context.Context, name string, data []byte) error
}
