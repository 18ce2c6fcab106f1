package core

import "strings"

// fallbackRule maps a set of trigger substrings to a canned reply. Rules are
// evaluated in order and the first match wins, so table order is load-bearing:
// reordering changes which reply a message containing several triggers gets.
type fallbackRule struct {
	keywords []string
	all      bool // require every keyword instead of any
	reply    string
}

var fallbackRules = []fallbackRule{
	{
		keywords: []string{"pan", "permanent account"},
		reply:    "PAN (Permanent Account Number) is a 10-character alphanumeric identifier issued by the Income Tax Department. It follows the format AAAPL1234C and is required for financial transactions above ₹50,000. You can apply online through NSDL or UTITSL websites.",
	},
	{
		keywords: []string{"aadhaar", "aadhar"},
		reply:    "Aadhaar is a 12-digit unique identity number issued by UIDAI that serves as proof of identity and address. It is linked to biometric data and can be updated online through the UIDAI website.",
	},
	{
		keywords: []string{"voter", "election"},
		reply:    "Voter ID (EPIC) is issued by the Election Commission of India and is required for voting. Any Indian citizen above 18 years can apply through the National Voter Service Portal.",
	},
	{
		keywords: []string{"passport"},
		reply:    "A passport is valid for 10 years for adults and 5 years for minors. You can apply through the Passport Seva Portal with regular or tatkal (expedited) options.",
	},
	{
		keywords: []string{"license", "driving"},
		reply:    "Driving licenses are issued by the Regional Transport Office (RTO). A learning license is valid for 6 months, while a permanent license is valid for 20 years. You can apply online through the Parivahan Sewa portal.",
	},
	{
		keywords: []string{"cte", "consent to establish"},
		reply:    "Consent to Establish (CTE) is required for new industrial units before construction. The application fee varies from ₹10,000 to ₹50,000 depending on project size. Required documents include project report, land documents, site plan, and process flow diagram.",
	},
	{
		keywords: []string{"cte application", "cte documents"},
		reply:    "For a CTE application, you need to submit a project report, land documents, site plan, and process flow diagram. The application can be submitted online through the State Pollution Control Board portal.",
	},
	{
		keywords: []string{"fee", "application"},
		all:      true,
		reply:    "The CTE application fee varies from ₹10,000 to ₹50,000 depending on the size and category of your project. You can check the exact fee applicable to your project on the State Pollution Control Board website.",
	},
	{
		keywords: []string{"verification", "verify"},
		reply:    "For document verification, original documents must be presented for physical verification. Self-attestation is required on photocopies, and documents in regional languages need certified translation.",
	},
	{
		keywords: []string{"hello", "hi"},
		reply:    "Hello! I can help you with any questions you have. Feel free to ask about government documents, general knowledge, or any other topic you're curious about.",
	},
	{
		keywords: []string{"document", "upload"},
		reply:    "You can upload documents through the upload section. We support various document types including PDF, DOCX, JPG, and PNG with a maximum file size of 10MB.",
	},
}

// genericFallbackReply answers anything the table does not match.
const genericFallbackReply = "I'm here to help with any questions you might have. While I specialize in government documents like PAN, Aadhaar, Voter ID, Passport, or Driving License, I can try to assist with other topics as well. What would you like to know?"

// FallbackReply selects a canned reply for the message by case-insensitive
// substring matching against the ordered rule table.
func FallbackReply(message string) string {
	lower := strings.ToLower(message)
	for _, rule := range fallbackRules {
		if rule.matches(lower) {
			return rule.reply
		}
	}
	return genericFallbackReply
}

func (r fallbackRule) matches(lowerMessage string) bool {
	if r.all {
		for _, kw := range r.keywords {
			if !strings.Contains(lowerMessage, kw) {
				return false
			}
		}
		return true
	}
	for _, kw := range r.keywords {
		if strings.Contains(lowerMessage, kw) {
			return true
		}
	}
	return false
}
