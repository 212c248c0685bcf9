package storage

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(gorm.ErrRecordNotFound) {
		t.Fatalf("record-not-found must be recognized")
	}
	if !IsNotFound(fmt.Errorf("load room: %w", gorm.ErrRecordNotFound)) {
		t.Fatalf("wrapped record-not-found must be recognized")
	}
	if IsNotFound(errors.New("disk I/O error")) {
		t.Fatalf("unrelated errors must not read as missing records")
	}
	if IsNotFound(nil) {
		t.Fatalf("nil is not a missing record")
	}
}
