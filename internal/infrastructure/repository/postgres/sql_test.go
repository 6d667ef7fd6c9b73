package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("sql.ErrNoRows must classify as not found")
	}
	if !isNotFound(fmt.Errorf("get team: %w", sql.ErrNoRows)) {
		t.Fatalf("wrapped sql.ErrNoRows must classify as not found")
	}
	if isNotFound(fmt.Errorf("connection reset")) {
		t.Fatalf("unrelated error must not classify as not found")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505", Constraint: "teams_name_key"}
	if !isUniqueViolation(dup) {
		t.Fatalf("23505 must classify as a unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("insert team: %w", dup)) {
		t.Fatalf("wrapped 23505 must classify as a unique violation")
	}
	if isUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Fatalf("foreign key violation must not classify as a unique violation")
	}
	if isUniqueViolation(nil) {
		t.Fatalf("nil must not classify as a unique violation")
	}
}

func TestIsSerializationFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "serialization failure", err: &pq.Error{Code: "40001"}, want: true},
		{name: "deadlock detected", err: &pq.Error{Code: "40P01"}, want: true},
		{name: "wrapped serialization failure", err: fmt.Errorf("commit acceptance tx: %w", &pq.Error{Code: "40001"}), want: true},
		{name: "unique violation", err: &pq.Error{Code: "23505"}, want: false},
		{name: "plain error", err: fmt.Errorf("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSerializationFailure(tt.err); got != tt.want {
				t.Fatalf("isSerializationFailure=%v want=%v", got, tt.want)
			}
		})
	}
}
