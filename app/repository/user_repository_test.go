package repository

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestCreatedFromPreRead(t *testing.T) {
	if created, err := createdFromPreRead(nil); created || err != nil {
		t.Fatalf("existing row: expected (false, nil), got (%v, %v)", created, err)
	}

	if created, err := createdFromPreRead(gorm.ErrRecordNotFound); !created || err != nil {
		t.Fatalf("not found: expected (true, nil), got (%v, %v)", created, err)
	}

	wrapped := fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound)
	if created, err := createdFromPreRead(wrapped); !created || err != nil {
		t.Fatalf("wrapped not found: expected (true, nil), got (%v, %v)", created, err)
	}

	readErr := errors.New("connection refused")
	if created, err := createdFromPreRead(readErr); created || !errors.Is(err, readErr) {
		t.Fatalf("read failure must propagate, got (%v, %v)", created, err)
	}
}
