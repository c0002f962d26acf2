// AngelaMos | 2026
// security_test.go

package core

import "testing"

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	match, err := VerifyPassword("hunter2hunter2", hash)
	if err != nil || !match {
		t.Errorf("correct password: match=%v err=%v", match, err)
	}

	match, err = VerifyPassword("wrong", hash)
	if err != nil {
		t.Errorf("mismatch should not error: %v", err)
	}
	if match {
		t.Error("wrong password verified")
	}
}

func TestVerifyPasswordTimingSafe(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	match, err := VerifyPasswordTimingSafe("hunter2hunter2", &hash)
	if err != nil || !match {
		t.Errorf("stored hash: match=%v err=%v", match, err)
	}

	// no stored hash still burns a full compare and reports no match
	match, err = VerifyPasswordTimingSafe("hunter2hunter2", nil)
	if err != nil {
		t.Errorf("nil hash should not error: %v", err)
	}
	if match {
		t.Error("nil hash verified")
	}

	empty := ""
	match, _ = VerifyPasswordTimingSafe("hunter2hunter2", &empty)
	if match {
		t.Error("empty hash verified")
	}
}
