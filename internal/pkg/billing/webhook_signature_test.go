package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"
)

func signStripePayload(t *testing.T, payload []byte, secret string, ts int64) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyStripeWebhookSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"invoice.paid"}`)
	secret := "whsec_test"
	header := signStripePayload(t, payload, secret, time.Now().Unix())

	if !VerifyStripeWebhookSignature(payload, header, secret, DefaultSignatureTolerance) {
		t.Fatalf("expected valid signature to verify")
	}
	if VerifyStripeWebhookSignature([]byte(`{"tampered":true}`), header, secret, DefaultSignatureTolerance) {
		t.Fatalf("expected tampered payload to fail")
	}
	if VerifyStripeWebhookSignature(payload, header, "whsec_other", DefaultSignatureTolerance) {
		t.Fatalf("expected wrong secret to fail")
	}
	if VerifyStripeWebhookSignature(payload, "", secret, DefaultSignatureTolerance) {
		t.Fatalf("expected empty header to fail")
	}
	if VerifyStripeWebhookSignature(payload, "t=123", secret, DefaultSignatureTolerance) {
		t.Fatalf("expected header without v1 to fail")
	}
}

func TestVerifyStripeWebhookSignatureStaleTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_2"}`)
	secret := "whsec_test"
	stale := signStripePayload(t, payload, secret, time.Now().Add(-time.Hour).Unix())

	if VerifyStripeWebhookSignature(payload, stale, secret, DefaultSignatureTolerance) {
		t.Fatalf("expected stale timestamp to fail within tolerance")
	}
	if !VerifyStripeWebhookSignature(payload, stale, secret, 0) {
		t.Fatalf("expected stale timestamp to pass with tolerance disabled")
	}
}

func TestVerifyStripeWebhookSignatureMultipleV1(t *testing.T) {
	payload := []byte(`{"id":"evt_3"}`)
	secret := "whsec_test"
	ts := time.Now().Unix()
	valid := signStripePayload(t, payload, secret, ts)
	header := fmt.Sprintf("t=%d,v1=%s,%s", ts, hex.EncodeToString([]byte("not-a-real-signature")), valid[len(fmt.Sprintf("t=%d,", ts)):])

	if !VerifyStripeWebhookSignature(payload, header, secret, DefaultSignatureTolerance) {
		t.Fatalf("expected any matching v1 candidate to verify")
	}
}
