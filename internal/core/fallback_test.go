package core

import (
	"strings"
	"testing"
)

const (
	panReply      = "PAN (Permanent Account Number) is a 10-character alphanumeric identifier issued by the Income Tax Department. It follows the format AAAPL1234C and is required for financial transactions above ₹50,000. You can apply online through NSDL or UTITSL websites."
	passportReply = "A passport is valid for 10 years for adults and 5 years for minors. You can apply through the Passport Seva Portal with regular or tatkal (expedited) options."
)

func TestFallbackReplyPassport(t *testing.T) {
	messages := []string{
		"passport",
		"How do I renew my PASSPORT?",
		"my passport expired, what now",
	}
	for _, msg := range messages {
		if got := FallbackReply(msg); got != passportReply {
			t.Errorf("FallbackReply(%q) = %q, want passport explainer", msg, got)
		}
	}
}

func TestFallbackReplyGeneric(t *testing.T) {
	got := FallbackReply("what's the weather like on mars")
	if got != genericFallbackReply {
		t.Errorf("unmatched message got %q, want generic fallback", got)
	}
	if got == "" {
		t.Error("generic fallback must be non-empty")
	}
}

// Table order is a pinned behavior: a message naming several document types
// gets the reply of the earliest rule, and "pan" precedes "aadhaar".
func TestFallbackReplyPrecedence(t *testing.T) {
	got := FallbackReply("difference between pan and aadhaar?")
	if got != panReply {
		t.Errorf("pan+aadhaar message got %q, want the PAN reply (first table entry)", got)
	}

	// The rule order itself is the fixture: any reshuffle is a behavior change.
	wantFirstKeywords := [][]string{
		{"pan", "permanent account"},
		{"aadhaar", "aadhar"},
		{"voter", "election"},
		{"passport"},
		{"license", "driving"},
		{"cte", "consent to establish"},
	}
	for i, want := range wantFirstKeywords {
		got := fallbackRules[i].keywords
		if len(got) != len(want) {
			t.Fatalf("rule %d keywords = %v, want %v", i, got, want)
		}
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("rule %d keywords = %v, want %v", i, got, want)
			}
		}
	}
}

func TestFallbackReplyCaseInsensitive(t *testing.T) {
	lower := FallbackReply("tell me about aadhaar")
	upper := FallbackReply("TELL ME ABOUT AADHAAR")
	if lower != upper {
		t.Error("matching must be case-insensitive")
	}
	if !strings.Contains(lower, "UIDAI") {
		t.Errorf("aadhaar reply = %q, want the Aadhaar explainer", lower)
	}
}

func TestFallbackReplyGreeting(t *testing.T) {
	got := FallbackReply("hello there")
	if !strings.HasPrefix(got, "Hello!") {
		t.Errorf("greeting got %q, want the greeting reply", got)
	}
}

func TestFallbackFeeRequiresBothKeywords(t *testing.T) {
	// "fee" alone must not trigger the fee rule; it falls through to generic.
	if got := FallbackReply("what is the fee"); got != genericFallbackReply {
		t.Errorf("lone 'fee' got %q, want generic fallback", got)
	}
	if got := FallbackReply("fee for my application"); got == genericFallbackReply {
		t.Error("'fee' + 'application' should match the fee rule")
	}
}
