package auth

import (
	"testing"
	"time"

	"pennyplan/internal/testutil"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestIssueAndVerify(t *testing.T) {
	codec := NewCodec(testSecret, time.Hour)

	sess, err := codec.Issue("alice", "user-1")
	testutil.AssertNoError(t, err)

	if sess.Subject != "alice" || sess.UserID != "user-1" {
		t.Errorf("unexpected session identity: %+v", sess)
	}
	if !sess.ExpiresAt.After(sess.IssuedAt) {
		t.Errorf("expected expiry after issue time: %+v", sess)
	}

	claims, err := codec.Verify(sess.Token)
	testutil.AssertNoError(t, err)
	if claims.Subject != "alice" {
		t.Errorf("expected subject alice, got %s", claims.Subject)
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected user id user-1, got %s", claims.UserID)
	}
}

func TestVerifyStripsBearerPrefix(t *testing.T) {
	codec := NewCodec(testSecret, time.Hour)

	sess, err := codec.Issue("alice", "user-1")
	testutil.AssertNoError(t, err)

	claims, err := codec.Verify("Bearer " + sess.Token)
	testutil.AssertNoError(t, err)
	if claims.UserID != "user-1" {
		t.Errorf("expected user id user-1, got %s", claims.UserID)
	}
}

func TestVerifyFailures(t *testing.T) {
	codec := NewCodec(testSecret, time.Hour)

	sess, err := codec.Issue("alice", "user-1")
	testutil.AssertNoError(t, err)

	// Every failure mode surfaces as the same opaque error code.
	t.Run("malformed", func(t *testing.T) {
		_, err := codec.Verify("not-a-token")
		testutil.AssertAppError(t, err, "INVALID_TOKEN")
	})

	t.Run("tampered", func(t *testing.T) {
		_, err := codec.Verify(sess.Token + "x")
		testutil.AssertAppError(t, err, "INVALID_TOKEN")
	})

	t.Run("wrong_key", func(t *testing.T) {
		other := NewCodec([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)
		_, err := other.Verify(sess.Token)
		testutil.AssertAppError(t, err, "INVALID_TOKEN")
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewCodec(testSecret, -time.Minute)
		sess, err := expired.Issue("alice", "user-1")
		testutil.AssertNoError(t, err)

		_, err = codec.Verify(sess.Token)
		testutil.AssertAppError(t, err, "INVALID_TOKEN")
	})
}
