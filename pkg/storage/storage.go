package storage

import (
	"context"
	"errors"
)

// Provider buffers uploaded files in an object store so that remote OCR
// services can read them by reference.
type Provider interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (*Object, error)
	Delete(ctx context.Context, key string) error
}

var (
	ErrNotFound = errors.New("object not found")
)

type Object struct {
	Bucket string
	Key    string
}
